package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Zikrig/health/internal/models"
)

const (
	connectAttempts = 10
	connectBackoff  = 2 * time.Second
)

// Postgres реализует Store поверх пула pgx.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect создаёт пул соединений с повторными попытками и инициализирует
// схему. После connectAttempts неудач возвращает ErrUnavailable — процесс
// не стартует.
func Connect(ctx context.Context, dbURL string) (*Postgres, error) {
	var (
		pool *pgxpool.Pool
		err  error
	)
	for attempt := 1; ; attempt++ {
		pool, err = pgxpool.New(ctx, dbURL)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		if attempt >= connectAttempts {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		case <-time.After(connectBackoff):
		}
	}

	p := &Postgres{pool: pool}
	if err := p.initSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return p, nil
}

// initSchema создаёт таблицы идемпотентно. Колонка daily_support_enabled
// добавлена позже основной схемы и досоздаётся условным ALTER для уже
// развёрнутых баз.
func (p *Postgres) initSchema(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			user_id BIGINT UNIQUE NOT NULL,
			username VARCHAR(255),
			full_name VARCHAR(255),
			name VARCHAR(255),
			period VARCHAR(255),
			question_count INTEGER DEFAULT 0,
			daily_support_enabled BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return err
	}

	var columnExists bool
	err = p.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM information_schema.columns
			WHERE table_name = 'users'
			AND column_name = 'daily_support_enabled'
		)`).Scan(&columnExists)
	if err != nil {
		return err
	}
	if !columnExists {
		_, err = p.pool.Exec(ctx, `
			ALTER TABLE users
			ADD COLUMN daily_support_enabled BOOLEAN DEFAULT FALSE`)
		if err != nil {
			return err
		}
	}

	_, err = p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS message_history (
			id SERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL,
			role VARCHAR(10) NOT NULL,
			content TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_message_history_user_id
		ON message_history(user_id, created_at DESC)`)
	return err
}

func (p *Postgres) Close() {
	p.pool.Close()
}

// ---------- users -----------------------------------------------------------

func (p *Postgres) UpsertUser(ctx context.Context, userID int64, username, fullName, name string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO users (user_id, username, full_name, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET name = $4`,
		userID, username, fullName, name)
	return err
}

func (p *Postgres) SetPeriod(ctx context.Context, userID int64, period string) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET period = $1 WHERE user_id = $2`, period, userID)
	return err
}

// IncrementQuestionCount выполняет инкремент и чтение одним запросом:
// два конкурентных вопроса не получат одинаковый счётчик.
func (p *Postgres) IncrementQuestionCount(ctx context.Context, userID int64) (int, error) {
	var count int
	err := p.pool.QueryRow(ctx, `
		UPDATE users SET question_count = question_count + 1
		WHERE user_id = $1
		RETURNING question_count`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (p *Postgres) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	var name, period *string
	err := p.pool.QueryRow(ctx,
		`SELECT name, period FROM users WHERE user_id = $1`, userID).
		Scan(&name, &period)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	prof := &models.Profile{}
	if name != nil {
		prof.Name = *name
	}
	if period != nil {
		prof.Period = *period
	}
	return prof, nil
}

func (p *Postgres) SetDailySupport(ctx context.Context, userID int64, enabled bool) error {
	_, err := p.pool.Exec(ctx,
		`UPDATE users SET daily_support_enabled = $1 WHERE user_id = $2`,
		enabled, userID)
	return err
}

func (p *Postgres) DailySupportEnabled(ctx context.Context, userID int64) (bool, error) {
	var enabled *bool
	err := p.pool.QueryRow(ctx,
		`SELECT daily_support_enabled FROM users WHERE user_id = $1`, userID).
		Scan(&enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return enabled != nil && *enabled, nil
}

// ---------- история ---------------------------------------------------------

func (p *Postgres) AppendHistory(ctx context.Context, userID int64, role, content string) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO message_history (user_id, role, content)
		VALUES ($1, $2, $3)`, userID, role, content)
	return err
}

func (p *Postgres) RecentHistory(ctx context.Context, userID int64, limit int) ([]models.HistoryMessage, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT role, content
		FROM message_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.HistoryMessage
	for rows.Next() {
		var m models.HistoryMessage
		if err := rows.Scan(&m.Role, &m.Content); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// запрос отдаёт от новых к старым — разворачиваем в хронологию
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res, nil
}

// ---------- выборки и агрегаты ----------------------------------------------

func (p *Postgres) DailySupportUserIDs(ctx context.Context) ([]int64, error) {
	return p.userIDs(ctx,
		`SELECT user_id FROM users WHERE daily_support_enabled = TRUE`)
}

func (p *Postgres) AllUserIDs(ctx context.Context) ([]int64, error) {
	return p.userIDs(ctx, `SELECT user_id FROM users`)
}

func (p *Postgres) userIDs(ctx context.Context, query string) ([]int64, error) {
	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (p *Postgres) Stats(ctx context.Context) (*models.Stats, error) {
	st := &models.Stats{}
	err := p.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(question_count), 0) FROM users`).
		Scan(&st.UserCount, &st.QuestionCount)
	if err != nil {
		return nil, err
	}

	rows, err := p.pool.Query(ctx, `
		SELECT period, COUNT(*) AS user_count,
		       COALESCE(SUM(question_count), 0) AS total_questions
		FROM users
		WHERE period IS NOT NULL
		GROUP BY period
		ORDER BY user_count DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ps models.PeriodStat
		if err := rows.Scan(&ps.Period, &ps.UserCount, &ps.QuestionCount); err != nil {
			return nil, err
		}
		st.Periods = append(st.Periods, ps)
	}
	return st, rows.Err()
}
