package models

// Profile — минимальный срез профиля для восстановления диалога.
type Profile struct {
	Name   string
	Period string
}

// HistoryMessage — одна реплика истории диалога.
type HistoryMessage struct {
	Role    string `db:"role" json:"role"` // "user" либо "assistant"
	Content string `db:"content" json:"content"`
}

// Stats — агрегаты для команды /stats.
type Stats struct {
	UserCount     int
	QuestionCount int
	Periods       []PeriodStat // по убыванию числа пользователей
}

type PeriodStat struct {
	Period        string
	UserCount     int
	QuestionCount int
}
