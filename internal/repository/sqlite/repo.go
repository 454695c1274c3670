// Package sqlite is the local cache: the saved login session, the case list,
// and per-case transcripts survive between runs so listings render before the
// network answers.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/legalconnect/consult-client/internal/config"
	"github.com/legalconnect/consult-client/internal/model"
	"github.com/legalconnect/consult-client/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	token      TEXT NOT NULL,
	user_id    INTEGER NOT NULL,
	role       TEXT NOT NULL,
	username   TEXT NOT NULL,
	expires_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cases (
	id            INTEGER PRIMARY KEY,
	user_id       INTEGER NOT NULL,
	lawyer_id     INTEGER,
	case_title    TEXT NOT NULL,
	case_type     TEXT NOT NULL DEFAULT '',
	case_category TEXT NOT NULL DEFAULT '',
	case_status   TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	solution      TEXT,
	created_at    TIMESTAMP,
	updated_at    TIMESTAMP
);

CREATE TABLE IF NOT EXISTS messages (
	id            INTEGER PRIMARY KEY,
	case_id       INTEGER NOT NULL,
	sender_id     INTEGER NOT NULL,
	sender_type   TEXT NOT NULL,
	receiver_id   INTEGER NOT NULL,
	receiver_type TEXT NOT NULL,
	message_text  TEXT NOT NULL,
	is_read       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_messages_case_id ON messages (case_id);
`

type Repository struct {
	connection *sqlx.DB
}

func New(cfg *config.Config) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	conn, err := sqlx.Connect("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to apply cache schema: %w", err)
	}

	return &Repository{
		connection: conn,
	}, nil
}

func (r *Repository) Close() {
	_ = r.connection.Close()
}

type sessionRow struct {
	Token     string       `db:"token"`
	UserID    int64        `db:"user_id"`
	Role      string       `db:"role"`
	Username  string       `db:"username"`
	ExpiresAt sql.NullTime `db:"expires_at"`
}

func (r *Repository) SaveSession(ctx context.Context, s *session.Session) error {
	var expiresAt interface{}
	if !s.ExpiresAt.IsZero() {
		expiresAt = s.ExpiresAt
	}

	query, args, err := sq.Insert("session").
		Columns("id", "token", "user_id", "role", "username", "expires_at").
		Values(1, s.Token, s.UserID, s.Role, s.Username, expiresAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET token = excluded.token, user_id = excluded.user_id, role = excluded.role, username = excluded.username, expires_at = excluded.expires_at").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.connection.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to save session: %v", err)
	}

	return nil
}

// LoadSession returns the saved session, or nil when no login is stored.
func (r *Repository) LoadSession(ctx context.Context) (*session.Session, error) {
	query, args, err := sq.Select("token", "user_id", "role", "username", "expires_at").
		From("session").
		Where(sq.Eq{"id": 1}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var row sessionRow
	err = r.connection.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %v", err)
	}

	s := &session.Session{
		Token:    row.Token,
		UserID:   row.UserID,
		Role:     row.Role,
		Username: row.Username,
	}
	if row.ExpiresAt.Valid {
		s.ExpiresAt = row.ExpiresAt.Time
	}

	return s, nil
}

func (r *Repository) ClearSession(ctx context.Context) error {
	query, args, err := sq.Delete("session").
		Where(sq.Eq{"id": 1}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.connection.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}

	return nil
}

func (r *Repository) UpsertCases(ctx context.Context, cases model.CaseList) error {
	if len(cases) == 0 {
		return nil
	}

	query := sq.Insert("cases").
		Columns("id", "user_id", "lawyer_id", "case_title", "case_type", "case_category", "case_status", "description", "solution", "created_at", "updated_at").
		Suffix("ON CONFLICT (id) DO UPDATE SET lawyer_id = excluded.lawyer_id, case_title = excluded.case_title, case_status = excluded.case_status, description = excluded.description, solution = excluded.solution, updated_at = excluded.updated_at").
		PlaceholderFormat(sq.Question)

	for _, c := range cases {
		query = query.Values(c.ID, c.UserID, c.LawyerID, c.CaseTitle, c.CaseType, c.CaseCategory, c.CaseStatus, c.Description, c.Solution, c.CreatedAt, c.UpdatedAt)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.connection.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert cases: %v", err)
	}

	return nil
}

func (r *Repository) ListCases(ctx context.Context) (model.CaseList, error) {
	query, args, err := sq.Select("id", "user_id", "lawyer_id", "case_title", "case_type", "case_category", "case_status", "description", "solution", "created_at", "updated_at").
		From("cases").
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var cases model.CaseList
	err = r.connection.SelectContext(ctx, &cases, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %v", err)
	}

	return cases, nil
}

// ReplaceTranscript swaps the cached transcript of one case for the given
// list, atomically.
func (r *Repository) ReplaceTranscript(ctx context.Context, caseID int64, messages model.MessageList) error {
	tx, err := r.connection.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	query, args, err := sq.Delete("messages").
		Where(sq.Eq{"case_id": caseID}).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear transcript: %v", err)
	}

	if len(messages) > 0 {
		insert := sq.Insert("messages").
			Columns("id", "case_id", "sender_id", "sender_type", "receiver_id", "receiver_type", "message_text", "is_read", "created_at").
			PlaceholderFormat(sq.Question)

		for _, m := range messages {
			insert = insert.Values(m.ID, m.CaseID, m.SenderID, m.SenderType, m.ReceiverID, m.ReceiverType, m.MessageText, m.IsRead, m.CreatedAt)
		}

		sqlStr, insertArgs, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build sql query: %v", err)
		}
		if _, err = tx.ExecContext(ctx, sqlStr, insertArgs...); err != nil {
			return fmt.Errorf("failed to insert transcript: %v", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transcript: %v", err)
	}

	return nil
}

// AppendMessage caches one pushed message. Redelivered identifiers are
// ignored, mirroring the in-memory merge rule.
func (r *Repository) AppendMessage(ctx context.Context, message model.Message) error {
	query, args, err := sq.Insert("messages").
		Options("OR IGNORE").
		Columns("id", "case_id", "sender_id", "sender_type", "receiver_id", "receiver_type", "message_text", "is_read", "created_at").
		Values(message.ID, message.CaseID, message.SenderID, message.SenderType, message.ReceiverID, message.ReceiverType, message.MessageText, message.IsRead, message.CreatedAt).
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.connection.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to append message: %v", err)
	}

	return nil
}

// CachedTranscript returns the stored transcript in insertion order, which is
// the arrival order of the original merge.
func (r *Repository) CachedTranscript(ctx context.Context, caseID int64) (model.MessageList, error) {
	query, args, err := sq.Select("id", "case_id", "sender_id", "sender_type", "receiver_id", "receiver_type", "message_text", "is_read", "created_at").
		From("messages").
		Where(sq.Eq{"case_id": caseID}).
		OrderBy("rowid").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql query: %v", err)
	}

	var messages model.MessageList
	err = r.connection.SelectContext(ctx, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached transcript: %v", err)
	}

	return messages, nil
}

// PruneTranscripts drops cached messages older than the retention window for
// cases no longer present in the case table.
func (r *Repository) PruneTranscripts(ctx context.Context, retention time.Duration) error {
	// The cutoff must go through the same Timestamp encoding the rows were
	// stored with, or the TEXT comparison misorders within a day.
	cutoff := model.NewTimestamp(time.Now().Add(-retention))

	query, args, err := sq.Delete("messages").
		Where(sq.Lt{"created_at": cutoff}).
		Where("case_id NOT IN (SELECT id FROM cases)").
		PlaceholderFormat(sq.Question).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql query: %v", err)
	}

	_, err = r.connection.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to prune transcripts: %v", err)
	}

	return nil
}
