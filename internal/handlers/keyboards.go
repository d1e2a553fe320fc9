package handlers

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// callback data инлайн-кнопок
const (
	cbFeedback        = "feedback"
	cbDailyOn         = "daily_on"
	cbDailyOff        = "daily_off"
	cbCancelBroadcast = "broadcast_cancel"
)

// Фиксированная клавиатура выбора периода при регистрации.
func periodKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Готовлюсь"),
			tgbotapi.NewKeyboardButton("Беременна"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Ребенку меньше года"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Ребенку 2-3 года"),
			tgbotapi.NewKeyboardButton("Ребенку 3+ года"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("Я - папа"),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAsk),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMaterials),
			tgbotapi.NewKeyboardButton(btnSupport),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

var feedbackKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Обратная связь", cbFeedback),
	),
)

func supportKeyboard(enabled bool) tgbotapi.InlineKeyboardMarkup {
	if enabled {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("Отключить поддержку", cbDailyOff),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Включить поддержку 💛", cbDailyOn),
		),
	)
}

var cancelBroadcastKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Отменить рассылку", cbCancelBroadcast),
	),
)

// Категории материалов — внешние ссылки, бот их только показывает.
var materialsKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("Календарь беременности", "https://mama.ru/kalendar-beremennosti/"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("Уход за малышом", "https://mama.ru/uhod-za-malyshom/"),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonURL("Поддержка мамы", "https://mama.ru/podderzhka-mamy/"),
	),
)

// emptyInlineKB убирает инлайн-кнопки под сообщением.
var emptyInlineKB = tgbotapi.InlineKeyboardMarkup{
	InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
}
