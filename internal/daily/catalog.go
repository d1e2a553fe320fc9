package daily

import (
	"encoding/json"
	"errors"
	"os"
	"time"
)

// FallbackMessage отправляется, когда каталог пуст.
const FallbackMessage = "Ты не одна, и всё в порядке."

// Theme — тематическая группа сообщений поддержки.
type Theme struct {
	Name     string   `json:"name"`
	Messages []string `json:"messages"`
}

// Catalog — каталог ежедневных сообщений. CurrentDay зарезервирован
// под будущую логику ротации и сейчас не используется.
type Catalog struct {
	CurrentDay int     `json:"current_day"`
	Themes     []Theme `json:"themes"`
}

// Load читает каталог из файла. Отсутствующий файл не ошибка:
// создаётся пустой каталог.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		c := &Catalog{}
		if err := c.Save(path); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Save записывает каталог обратно в файл.
func (c *Catalog) Save(path string) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// MessageFor — сообщение на заданный календарный день. Чистая функция от
// дня года и каталога: в течение дня всем возвращается одна и та же строка,
// смена сообщения происходит на границе суток без хранения курсора.
func (c *Catalog) MessageFor(day time.Time) string {
	var all []string
	for _, t := range c.Themes {
		all = append(all, t.Messages...)
	}
	if len(all) == 0 {
		return FallbackMessage
	}
	return all[(day.YearDay()-1)%len(all)]
}
