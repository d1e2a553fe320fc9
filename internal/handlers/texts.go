package handlers

// Кнопки главного меню.
const (
	btnMaterials = "Полезные материалы"
	btnAsk       = "Хочу задать вопрос или поделиться чем-то, что меня волнует"
	btnSupport   = "Получать поддержку"
)

const (
	textGreeting = "Привет! 👋 Я Мила - твой помощник во время беременности и материнства.\n\n" +
		"Как тебя зовут?"
	textWelcomeBackFmt = "С возвращением, %s! 🤗 Задавай вопрос или выбери пункт меню."
	textAskPeriodFmt   = "Приятно познакомиться, %s! 🤗\n\nКакой у тебя сейчас период?"
	textMenuReady      = "Теперь ты можешь задать любой вопрос!"

	textUrgent = "🚨 ВНИМАНИЕ! При таких симптомах необходимо НЕМЕДЛЕННО обратиться к врачу или вызвать скорую помощь.\n\n" +
		"Это не вопрос для чат-бота. Пожалуйста, не теряйте время - обратитесь за медицинской помощи прямо сейчас!"
	textDisclaimer = "\n\n⚠️ Важно! Я не заменяю врача. При серьезных симптомах обращайся к специалисту."

	textStartHint    = "Пожалуйста, начните с команды /start"
	textResendAsText = "Пожалуйста, отправь вопрос обычным текстом."
	textQuestionHint = "Слушаю тебя! Напиши свой вопрос одним сообщением."
	textTryLater     = "Произошла ошибка. Попробуйте позже."

	textFeedbackAsk    = "Пожалуйста, напишите ваш отзыв или комментарий:"
	textFeedbackThanks = "Спасибо за вашу обратную связь! 💕"

	textMaterials  = "Выбери, что тебе сейчас интересно:"
	textSupportAsk = "Хочешь получать одно тёплое сообщение каждое утро в 9:00?"
	textSupportOn  = "Ежедневная поддержка включена! Каждое утро в 9:00 я буду присылать тебе тёплое сообщение. 💛"
	textSupportOff = "Ежедневная поддержка выключена. Ты всегда можешь включить её снова."

	textBroadcastAsk       = "Пришлите сообщение для рассылки — текст, фото или файл."
	textBroadcastCancelled = "Рассылка отменена."
	textBroadcastTallyFmt  = "Рассылка завершена: доставлено %d, ошибок %d, всего получателей %d."
)

// periodTexts — приветствие для каждого распознанного периода.
// Нераспознанный текст сохраняется как свободная метка без приветствия.
var periodTexts = map[string]string{
	"Готовлюсь":            "Сейчас самое время подготовиться и узнать всё о будущих месяцах. Задавай вопросы — календарь беременности, советы, ответы врачей все рядом!",
	"Беременна":            "Поздравляю с этим увлекательным путешествием! Поддержу на каждом этапе, подскажу полезные материалы, открою календарь беременности и помогу консультироваться с экспертами.",
	"Ребенку меньше года":  "Первый год — время радости, вопросов и забот. Со мной ты найдёшь поддержку, советы по уходу, развитию малыша и себе.",
	"Ребенку 2-3 года":     "Возраст открытий и проб — расскажем о воспитании, играх, развитии речи и поддержке мамы. Ты не одна — тут только полезное и актуальное.",
	"Ребенку 3+ года":      "Для семьи с дошкольником здесь есть идеи, рекомендации по развитию, адаптации в саду и подготовке к школе — задавай любые вопросы.",
	"Я - папа":             "Отлично, что вы с нами! Бот открыт для всех родителей — мужчины тоже находят полезную информацию, поддержку, советы для себя и семьи.",
}
