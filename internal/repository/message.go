// Package repository provides persistence implementations for guestbook
// messages using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/atinyakov/exhibition/internal/models"
)

const messageColumns = "id, writer, password_hash, message, type, target_id, created_at, updated_at"

// PostgresMessageRepository implements guestbook storage against PostgreSQL.
// Every method is a single round trip; connections are taken from and
// returned to the *sql.DB pool per call.
type PostgresMessageRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB

	builder sq.StatementBuilderType
}

// NewPostgresMessageRepository creates a repository over db.
func NewPostgresMessageRepository(db *sql.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		DB:      db,
		builder: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func applyFilter(b sq.SelectBuilder, f models.MessageFilter) sq.SelectBuilder {
	if f.Type != nil {
		b = b.Where("type = ?", *f.Type)
	}
	if f.TargetID != nil {
		b = b.Where("target_id = ?", *f.TargetID)
	}
	return b
}

// CountMessages returns the number of messages matching f.
func (r *PostgresMessageRepository) CountMessages(ctx context.Context, f models.MessageFilter) (int64, error) {
	query, args, err := applyFilter(r.builder.Select("COUNT(*)").From("messages"), f).ToSql()
	if err != nil {
		return 0, fmt.Errorf("CountMessages: build: %w", err)
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("CountMessages: %w", err)
	}
	return total, nil
}

// ListMessages returns up to limit messages matching f, newest first,
// skipping the first offset.
func (r *PostgresMessageRepository) ListMessages(ctx context.Context, f models.MessageFilter, limit, offset uint64) ([]models.Message, error) {
	b := applyFilter(r.builder.Select(messageColumns).From("messages"), f).
		OrderBy("created_at DESC").
		Limit(limit).
		Offset(offset)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListMessages: build: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListMessages: %w", err)
	}
	defer rows.Close()

	messages := []models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		messages = append(messages, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListMessages: rows: %w", err)
	}
	return messages, nil
}

// CreateMessage inserts m and returns the assigned id. ID is ignored.
func (r *PostgresMessageRepository) CreateMessage(ctx context.Context, m models.Message) (int64, error) {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO messages (writer, password_hash, message, type, target_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, m.Writer, m.PasswordHash, m.Text, nullString(m.Type), nullInt64(m.TargetID), m.CreatedAt, m.UpdatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("CreateMessage: %w", err)
	}
	return id, nil
}

// GetMessage fetches a message by id. It returns models.ErrNotFound when no
// row exists.
func (r *PostgresMessageRepository) GetMessage(ctx context.Context, id int64) (*models.Message, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id)
	m, err := scanMessage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetMessage: %w", err)
	}
	return m, nil
}

// UpdateMessageText replaces the text of message id and sets updated_at.
// It returns models.ErrNotFound when no row was changed.
func (r *PostgresMessageRepository) UpdateMessageText(ctx context.Context, id int64, text string, updatedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE messages SET message = $1, updated_at = $2 WHERE id = $3`,
		text, updatedAt, id,
	)
	if err != nil {
		return fmt.Errorf("UpdateMessageText: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateMessageText: rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *PostgresMessageRepository) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(s scanner) (*models.Message, error) {
	var (
		m        models.Message
		msgType  sql.NullString
		targetID sql.NullInt64
	)
	if err := s.Scan(&m.ID, &m.Writer, &m.PasswordHash, &m.Text, &msgType, &targetID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if msgType.Valid {
		m.Type = &msgType.String
	}
	if targetID.Valid {
		m.TargetID = &targetID.Int64
	}
	return &m, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
