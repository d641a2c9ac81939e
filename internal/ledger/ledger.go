package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"pdf-splitter/internal/partition"
)

const DefaultTable = "split_parts"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]{0,63}$`)

// ValidateDSN проверяет DSN до открытия соединения.
func ValidateDSN(dsn string) error {
	if _, err := mysql.ParseDSN(dsn); err != nil {
		return fmt.Errorf("invalid ledger dsn: %w", err)
	}
	return nil
}

func ValidateTable(name string) error {
	if !tableNameRe.MatchString(name) {
		return fmt.Errorf("invalid ledger table name %q", name)
	}
	return nil
}

// Open открывает пул соединений. Журнал пишется одним потоком, пул маленький.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger dsn: %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}

	return db, nil
}

// NewRunID возвращает UUIDv7 запуска: журнальные записи одного запуска сортируются по времени.
func NewRunID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Ident оборачивает идентификатор в обратные кавычки.
func Ident(s string) string {
	s = strings.TrimSpace(s)

	if s == "" || strings.Contains(s, "`") {
		return s
	}

	return "`" + s + "`"
}

func BuildCreateTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	run_id CHAR(36) NOT NULL,
	source VARCHAR(1024) NOT NULL,
	page_from INT NOT NULL,
	page_to INT NOT NULL,
	pages INT NOT NULL,
	path VARCHAR(1024) NOT NULL,
	created_at DATETIME NOT NULL,
	KEY idx_run (run_id)
)`, Ident(table))
}

func BuildInsertSQL(table string) string {
	return fmt.Sprintf(
		"INSERT INTO %s (run_id, source, page_from, page_to, pages, path, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		Ident(table),
	)
}

// EnsureTable создаёт таблицу журнала, если её нет.
func EnsureTable(ctx context.Context, db *sql.DB, table string) error {
	if err := ValidateTable(table); err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, BuildCreateTableSQL(table)); err != nil {
		return fmt.Errorf("create ledger table: %w", err)
	}

	return nil
}

// Record пишет все записанные части результата одной транзакцией.
func Record(ctx context.Context, db *sql.DB, table, runID string, res partition.Result) (err error) {
	if len(res.Parts) == 0 {
		return nil
	}

	if err := ValidateTable(table); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, BuildInsertSQL(table))
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range res.Parts {
		if _, err = stmt.ExecContext(ctx, runID, res.Source, p.Range.From, p.Range.To, p.Range.Len(), p.Path, now); err != nil {
			return fmt.Errorf("insert %s: %w", p.Path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	log.Printf("[DEBUG] ledger: %d parts of %s recorded (run %s)", len(res.Parts), res.Source, runID)

	return nil
}
