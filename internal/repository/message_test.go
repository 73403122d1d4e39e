package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atinyakov/exhibition/internal/models"
)

var messageRowColumns = []string{"id", "writer", "password_hash", "message", "type", "target_id", "created_at", "updated_at"}

func setupMock(t *testing.T) (*PostgresMessageRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	repo := NewPostgresMessageRepository(db)
	cleanup := func() { db.Close() }
	return repo, mock, cleanup
}

func TestCountMessages_All(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM messages`)).
		WithoutArgs().
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := repo.CountMessages(context.Background(), models.MessageFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 {
		t.Errorf("expected 42, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCountMessages_Filtered(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	typ := models.DesignerMessageType
	target := int64(7)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM messages WHERE type = $1 AND target_id = $2`)).
		WithArgs(typ, target).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	total, err := repo.CountMessages(context.Background(), models.MessageFilter{Type: &typ, TargetID: &target})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 3 {
		t.Errorf("expected 3, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCountMessages_Error(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM messages`)).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.CountMessages(context.Background(), models.MessageFilter{})
	if err == nil || !regexp.MustCompile(`CountMessages`).MatchString(err.Error()) {
		t.Errorf("expected CountMessages error, got %v", err)
	}
}

func TestListMessages_Success(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	newer := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	older := time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(messageRowColumns).
		AddRow(int64(2), "Lee", "hash2", "second", "designer", int64(5), newer, newer).
		AddRow(int64(1), "Kim", "hash1", "first", nil, nil, older, older)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages ORDER BY created_at DESC LIMIT 10 OFFSET 20`)).
		WithoutArgs().
		WillReturnRows(rows)

	got, err := repo.ListMessages(context.Background(), models.MessageFilter{}, 10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(got))
	}
	if got[0].ID != 2 || got[0].Type == nil || *got[0].Type != "designer" || got[0].TargetID == nil || *got[0].TargetID != 5 {
		t.Errorf("unexpected first message: %+v", got[0])
	}
	if got[1].Type != nil || got[1].TargetID != nil {
		t.Errorf("expected NULL type/target to map to nil, got %+v", got[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListMessages_FilteredEmpty(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	typ := models.DesignerMessageType
	target := int64(9)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages WHERE type = $1 AND target_id = $2 ORDER BY created_at DESC LIMIT 8 OFFSET 0`)).
		WithArgs(typ, target).
		WillReturnRows(sqlmock.NewRows(messageRowColumns))

	got, err := repo.ListMessages(context.Background(), models.MessageFilter{Type: &typ, TargetID: &target}, 8, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestListMessages_ScanError(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages`)).WillReturnRows(rows)

	if _, err := repo.ListMessages(context.Background(), models.MessageFilter{}, 10, 0); err == nil {
		t.Error("expected scan error, got nil")
	}
}

func TestCreateMessage_Success(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	typ := "designer"
	target := int64(4)
	msg := models.Message{
		Writer: "Kim", PasswordHash: "hash", Text: "hello",
		Type: &typ, TargetID: &target, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO messages (writer, password_hash, message, type, target_id, created_at, updated_at)`)).
		WithArgs("Kim", "hash", "hello", typ, target, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.CreateMessage(context.Background(), msg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 11 {
		t.Errorf("expected id 11, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateMessage_NullOptionals(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO messages`)).
		WithArgs("Kim", "hash", "hello", nil, nil, now, now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := repo.CreateMessage(context.Background(), models.Message{
		Writer: "Kim", PasswordHash: "hash", Text: "hello", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestCreateMessage_Error(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO messages`)).
		WillReturnError(errors.New("value too long"))

	_, err := repo.CreateMessage(context.Background(), models.Message{})
	if err == nil {
		t.Error("expected error, got nil")
	}
}

func TestGetMessage_Success(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	now := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + messageColumns + ` FROM messages WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(messageRowColumns).
			AddRow(int64(5), "Kim", "hash", "hello", nil, nil, now, now))

	m, err := repo.GetMessage(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.ID != 5 || m.Writer != "Kim" || m.PasswordHash != "hash" || !m.CreatedAt.Equal(now) {
		t.Errorf("got wrong message: %+v", m)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestGetMessage_NotFound(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages WHERE id = $1`)).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetMessage(context.Background(), 404)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetMessage_BackendError(t *testing.T) {
	repo, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM messages WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnError(errors.New("db down"))

	_, err := repo.GetMessage(context.Background(), 1)
	if err == nil || errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected backend error, got %v", err)
	}
}

func TestUpdateMessageText(t *testing.T) {
	now := time.Date(2025, 2, 4, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		result   sql.Result
		execErr  error
		wantErr  error
		anyError bool
	}{
		{name: "updated", result: sqlmock.NewResult(0, 1)},
		{name: "missing row", result: sqlmock.NewResult(0, 0), wantErr: models.ErrNotFound},
		{name: "exec failure", execErr: errors.New("deadlock"), anyError: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupMock(t)
			defer cleanup()

			exp := mock.ExpectExec(regexp.QuoteMeta(`UPDATE messages SET message = $1, updated_at = $2 WHERE id = $3`)).
				WithArgs("edited", now, int64(3))
			if tc.execErr != nil {
				exp.WillReturnError(tc.execErr)
			} else {
				exp.WillReturnResult(tc.result)
			}

			err := repo.UpdateMessageText(context.Background(), 3, "edited", now)
			switch {
			case tc.anyError:
				if err == nil {
					t.Error("expected error, got nil")
				}
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			default:
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unfulfilled expectations: %v", err)
			}
		})
	}
}
