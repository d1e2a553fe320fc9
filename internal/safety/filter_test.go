package safety

import "testing"

func TestContains(t *testing.T) {
	f := Default()

	cases := []struct {
		text string
		want bool
	}{
		{"У меня температура 39", true},
		{"ТЕМПЕРАТУРА не спадает", true},
		{"сильная головная боль", true},
		{"гипертемпература после прививки", true}, // стем внутри слова тоже считается
		{"как выбрать коляску", false},
		{"", false},
	}
	for _, c := range cases {
		if got := f.Contains(c.text); got != c.want {
			t.Errorf("Contains(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestMatchesWordStart(t *testing.T) {
	f := Default()

	cases := []struct {
		text string
		want bool
	}{
		{"У меня температура 39", true},
		{"температур", true},
		{"(боль в спине)", true},
		{"гипертемпература после прививки", false}, // стем не в начале слова
		{"как выбрать коляску", false},
	}
	for _, c := range cases {
		if got := f.MatchesWordStart(c.text); got != c.want {
			t.Errorf("MatchesWordStart(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

// Проверки должны оставаться различимыми: вхождение в середину слова
// ловит только Contains.
func TestChecksAreDistinct(t *testing.T) {
	f := Default()
	text := "послеродовые микрокровотечения"
	if !f.Contains(text) {
		t.Fatal("Contains должен найти стем внутри слова")
	}
	if f.MatchesWordStart(text) {
		t.Fatal("MatchesWordStart не должен срабатывать на стем внутри слова")
	}
}
