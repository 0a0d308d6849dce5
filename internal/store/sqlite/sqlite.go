// Package sqlite provides the SQLite-backed Expense Store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/sg-217/paisabuddy/internal/core"
	"github.com/sg-217/paisabuddy/internal/store"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create implements store.ExpenseStore.
func (r *Repository) Create(ctx context.Context, e core.Expense) (core.Expense, error) {
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, amount_paise, category, description, vendor, date_ms, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.Amount.Paise, string(e.Category), e.Description,
		e.Vendor, e.Date.UnixMilli(), strings.Join(e.Tags, ","),
	)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", e.ID,
		"category", e.Category,
		"amount_paise", e.Amount.Paise)

	return e, nil
}

// Find implements store.ExpenseStore. Filtering, ordering, and limiting
// all happen in SQL.
func (r *Repository) Find(ctx context.Context, userID string, f store.Filter) ([]core.Expense, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT id, user_id, amount_paise, category, description, vendor, date_ms, tags
		FROM expenses WHERE user_id = ?`)
	args := []any{userID}

	if f.Range != nil {
		query.WriteString(" AND date_ms >= ? AND date_ms <= ?")
		args = append(args, f.Range.Start.UnixMilli(), f.Range.End.UnixMilli())
	}
	if f.Category != "" {
		query.WriteString(" AND category = ?")
		args = append(args, string(f.Category))
	}

	switch f.Sort {
	case store.ByAmountDesc:
		query.WriteString(" ORDER BY amount_paise DESC")
	case store.ByDateAsc:
		query.WriteString(" ORDER BY date_ms ASC")
	default:
		query.WriteString(" ORDER BY date_ms DESC")
	}
	if f.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer rows.Close()

	var out []core.Expense
	for rows.Next() {
		var (
			e      core.Expense
			cat    string
			dateMS int64
			tags   string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount.Paise, &cat, &e.Description, &e.Vendor, &dateMS, &tags); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Category = core.Category(cat)
		e.Date = time.UnixMilli(dateMS)
		if tags != "" {
			e.Tags = strings.Split(tags, ",")
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return out, nil
}

// AddKeywords implements store.LexiconStore.
func (r *Repository) AddKeywords(ctx context.Context, cat core.Category, keywords []string) error {
	if !cat.Valid() {
		return core.ErrInvalidCategory
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin keyword tx: %w", err)
	}
	defer tx.Rollback()

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT OR IGNORE INTO lexicon_keywords (category, keyword) VALUES (?, ?)`,
			string(cat), kw,
		); err != nil {
			return fmt.Errorf("insert keyword: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit keywords: %w", err)
	}

	slog.InfoContext(ctx, "Lexicon keywords stored", "category", cat, "count", len(keywords))
	return nil
}

// LoadKeywords implements store.LexiconStore.
func (r *Repository) LoadKeywords(ctx context.Context) (map[core.Category][]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT category, keyword FROM lexicon_keywords ORDER BY created_at, keyword`)
	if err != nil {
		return nil, fmt.Errorf("load keywords: %w", err)
	}
	defer rows.Close()

	out := make(map[core.Category][]string)
	for rows.Next() {
		var cat, kw string
		if err := rows.Scan(&cat, &kw); err != nil {
			return nil, fmt.Errorf("scan keyword: %w", err)
		}
		out[core.Category(cat)] = append(out[core.Category(cat)], kw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate keywords: %w", err)
	}
	return out, nil
}
