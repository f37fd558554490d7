package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"ctask/internal/config"
	logx "ctask/pkg/logx"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// sqliteStore keeps the document in three tables: job (single row),
// job_tasks and task_list. Accounts with no tasks are not represented.
type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	st := &sqliteStore{db: db, log: log.With(logx.String("comp", "storage"), logx.String("driver", "sqlite"))}

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := st.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *sqliteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *sqliteStore) Load(ctx context.Context) (*config.Document, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	doc := config.Default()

	err := s.db.QueryRowContext(ctx, `SELECT total_account FROM job WHERE id = 1`).Scan(&doc.Job.TotalAccount)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.Save(ctx, doc); err != nil {
			return nil, err
		}
		s.log.Info("initialized empty state database")
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, interval_days FROM job_tasks`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var name string
		var d int
		if err := rows.Scan(&name, &d); err != nil {
			rows.Close()
			return nil, err
		}
		doc.Job.Tasks[name] = d
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT account, task, start_time FROM task_list`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var account, task, start string
		if err := rows.Scan(&account, &task, &start); err != nil {
			rows.Close()
			return nil, err
		}
		tasks := doc.TaskList[account]
		if tasks == nil {
			tasks = map[string]config.Entry{}
			doc.TaskList[account] = tasks
		}
		tasks[task] = config.Entry{StartTime: start}
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *sqliteStore) Save(ctx context.Context, doc *config.Document) (err error) {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
INSERT INTO job(id, total_account) VALUES (1, ?)
ON CONFLICT(id) DO UPDATE SET total_account = excluded.total_account`, doc.Job.TotalAccount); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM job_tasks; DELETE FROM task_list;`); err != nil {
		return err
	}
	for name, d := range doc.Job.Tasks {
		if _, err = tx.ExecContext(ctx, `INSERT INTO job_tasks(name, interval_days) VALUES (?, ?)`, name, d); err != nil {
			return err
		}
	}
	for account, tasks := range doc.TaskList {
		for task, e := range tasks {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO task_list(account, task, start_time) VALUES (?, ?, ?)`,
				account, task, e.StartTime,
			); err != nil {
				return err
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("state saved", logx.Int("tasks", len(doc.Job.Tasks)), logx.Int("accounts", len(doc.TaskList)))
	return nil
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}
