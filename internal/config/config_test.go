package config

import "testing"

func setRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DB_URL", "postgres://localhost/health")
	t.Setenv("DEEPSEEK_API_KEY", "key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DeepSeekURL != "https://api.deepseek.com/v1/chat/completions" {
		t.Fatalf("URL по умолчанию: %q", cfg.DeepSeekURL)
	}
	if cfg.DailyMessages != "daily_messages.json" {
		t.Fatalf("файл сообщений по умолчанию: %q", cfg.DailyMessages)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("уровень логов по умолчанию: %q", cfg.LogLevel)
	}
}

func TestLoadAdminsList(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMINS", "101,202")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Admins) != 2 || cfg.Admins[0] != 101 || cfg.Admins[1] != 202 {
		t.Fatalf("список администраторов: %v", cfg.Admins)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("DB_URL", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка без обязательных переменных")
	}
}

// Переменная, установленная в пустую строку, эквивалентна отсутствующей.
func TestLoadEmptySetVariable(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка при пустом DB_URL")
	}
}
