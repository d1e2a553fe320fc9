package models

// State — состояние диалога пользователя. Живёт в памяти процесса;
// после рестарта восстанавливается из профиля.
type State string

const (
	StateNone             State = ""
	StateCollectingName   State = "collecting_name"
	StateCollectingPeriod State = "collecting_period"
	StateMainMenu         State = "main_menu"
	StateAwaitingQuestion State = "awaiting_question"
	StateAwaitingFeedback State = "awaiting_feedback"
	StateAdminBroadcast   State = "admin_broadcast"
)
