package safety

import (
	"regexp"
	"strings"
)

// TriggerWords — стемы симптомов, при которых бот не отвечает по существу.
// Стемы намеренно усечены: "температур" покрывает "температура",
// "температуры" и т.д.
var TriggerWords = []string{
	"температур", "боль", "кровотеч", "давлен", "понос",
	"рвот", "диаре", "головокруж", "сознан",
}

// Filter — статический фильтр тревожных формулировок. Две проверки ведут
// себя по-разному: Contains срабатывает на вхождение стема в любом месте
// слова (первичная проверка диалога), MatchesWordStart — только на стем
// в начале слова (проверка шлюза перед запросом к модели).
type Filter struct {
	stems   []string
	anchors []*regexp.Regexp
}

func New(stems []string) *Filter {
	f := &Filter{stems: make([]string, 0, len(stems))}
	for _, s := range stems {
		stem := strings.ToLower(s)
		f.stems = append(f.stems, stem)
		// \b в RE2 не знает кириллицы, поэтому начало слова якорим вручную.
		f.anchors = append(f.anchors,
			regexp.MustCompile(`(?:^|[^\p{L}\p{N}])`+regexp.QuoteMeta(stem)))
	}
	return f
}

// Default — фильтр со стандартным списком стемов.
func Default() *Filter { return New(TriggerWords) }

// Contains сообщает, содержит ли текст какой-либо стем как подстроку.
func (f *Filter) Contains(text string) bool {
	lower := strings.ToLower(text)
	for _, stem := range f.stems {
		if strings.Contains(lower, stem) {
			return true
		}
	}
	return false
}

// MatchesWordStart сообщает, начинается ли какое-либо слово текста
// с триггерного стема.
func (f *Filter) MatchesWordStart(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range f.anchors {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}
