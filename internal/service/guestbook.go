// Package service provides the guestbook and admin authentication business
// logic, delegating persistence to repository interfaces.
package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/atinyakov/exhibition/internal/models"
)

// Client-facing validation reasons.
const (
	ReasonWriterRequired   = "Writer name is required"
	ReasonPasswordLength   = "Password must be between 4 and 10 characters"
	ReasonMessageRequired  = "Message content is required"
	ReasonCreateTooLong    = "Message cannot exceed 200 characters"
	ReasonWriterTooLong    = "Writer name cannot exceed 50 characters"
	ReasonPasswordRequired = "Password is required"
	ReasonUpdateTooLong    = "Message cannot exceed 120 characters"
	ReasonInvalidPage      = "Page must be zero or greater"
	ReasonInvalidPageSize  = "Page size must be greater than zero"
	ReasonInvalidTargetID  = "Target ID must be a positive number"
)

// MessageRepository defines the persistence operations needed by the
// GuestbookService.
type MessageRepository interface {
	// CountMessages returns the number of messages matching the filter.
	CountMessages(ctx context.Context, f models.MessageFilter) (int64, error)
	// ListMessages returns one createdAt-descending window of matching messages.
	ListMessages(ctx context.Context, f models.MessageFilter, limit, offset uint64) ([]models.Message, error)
	// CreateMessage stores a message and returns its id.
	CreateMessage(ctx context.Context, m models.Message) (int64, error)
	// GetMessage fetches a message, or models.ErrNotFound.
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	// UpdateMessageText replaces the text and refreshes updated_at.
	UpdateMessageText(ctx context.Context, id int64, text string, updatedAt time.Time) error
}

// PasswordHasher turns ownership passwords into stored hashes and checks
// candidates against them.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Matches(hash, password string) bool
}

// GuestbookService implements the guestbook message lifecycle: paginated
// listing, public creation, ownership pre-flight checks and edits.
type GuestbookService struct {
	repo   MessageRepository
	hasher PasswordHasher
	loc    *time.Location
	now    func() time.Time
}

// NewGuestbookService constructs a GuestbookService. Dates in display form
// are rendered in loc.
func NewGuestbookService(repo MessageRepository, hasher PasswordHasher, loc *time.Location) *GuestbookService {
	if loc == nil {
		loc = time.Local
	}
	return &GuestbookService{repo: repo, hasher: hasher, loc: loc, now: time.Now}
}

// List returns page (0-indexed) of all messages, newest first. The count and
// the window are separate reads, so under concurrent writes total may be
// briefly inconsistent with the returned page.
func (s *GuestbookService) List(ctx context.Context, page, pageSize int) (*models.MessagePage, error) {
	return s.list(ctx, models.MessageFilter{}, page, pageSize)
}

// ListByTarget is List restricted to messages tagged with msgType and
// targetID, e.g. one designer's thread.
func (s *GuestbookService) ListByTarget(ctx context.Context, msgType string, targetID int64, page, pageSize int) (*models.MessagePage, error) {
	return s.list(ctx, models.MessageFilter{Type: &msgType, TargetID: &targetID}, page, pageSize)
}

func (s *GuestbookService) list(ctx context.Context, f models.MessageFilter, page, pageSize int) (*models.MessagePage, error) {
	if page < 0 {
		return nil, models.NewValidationError(ReasonInvalidPage)
	}
	if pageSize <= 0 {
		return nil, models.NewValidationError(ReasonInvalidPageSize)
	}

	total, err := s.repo.CountMessages(ctx, f)
	if err != nil {
		return nil, err
	}

	// A page whose offset does not fit in a BIGINT lies past every row.
	rows := []models.Message{}
	if uint64(page) <= math.MaxInt64/uint64(pageSize) {
		offset := uint64(page) * uint64(pageSize)
		rows, err = s.repo.ListMessages(ctx, f, uint64(pageSize), offset)
		if err != nil {
			return nil, err
		}
	}

	views := make([]models.MessageView, 0, len(rows))
	for _, m := range rows {
		views = append(views, m.View(s.loc))
	}

	return &models.MessagePage{
		Messages:   views,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: models.TotalPages(total, pageSize),
	}, nil
}

// Create validates and stores a public guestbook post, then returns the
// stored record in display form. Rules are checked in order and the first
// violation is returned as a *models.ValidationError.
func (s *GuestbookService) Create(ctx context.Context, in models.CreateMessageInput) (*models.MessageView, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	msg := models.Message{
		Writer:       strings.TrimSpace(in.Writer),
		PasswordHash: hash,
		Text:         strings.TrimSpace(in.Text),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.Type != nil && *in.Type != "" {
		msg.Type = in.Type
	}
	if in.TargetID != nil && *in.TargetID != 0 {
		msg.TargetID = in.TargetID
	}

	id, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	view := created.View(s.loc)
	return &view, nil
}

func validateCreate(in models.CreateMessageInput) error {
	if strings.TrimSpace(in.Writer) == "" {
		return models.NewValidationError(ReasonWriterRequired)
	}
	if n := utf8.RuneCountInString(in.Password); n < models.MinPasswordLength || n > models.MaxPasswordLength {
		return models.NewValidationError(ReasonPasswordLength)
	}
	if strings.TrimSpace(in.Text) == "" {
		return models.NewValidationError(ReasonMessageRequired)
	}
	if utf8.RuneCountInString(in.Text) > models.MaxCreateTextLength {
		return models.NewValidationError(ReasonCreateTooLong)
	}
	if utf8.RuneCountInString(in.Writer) > models.MaxWriterLength {
		return models.NewValidationError(ReasonWriterTooLong)
	}
	if in.TargetID != nil && *in.TargetID < 0 {
		return models.NewValidationError(ReasonInvalidTargetID)
	}
	return nil
}

// VerifyOwnership reports whether password owns message id without
// modifying it. It returns models.ErrNotFound for an unknown id.
func (s *GuestbookService) VerifyOwnership(ctx context.Context, id int64, password string) (bool, error) {
	if password == "" {
		return false, models.NewValidationError(ReasonPasswordRequired)
	}

	msg, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return false, err
	}
	return s.hasher.Matches(msg.PasswordHash, password), nil
}

// Update replaces the text of message id when password owns it and returns
// the updated record in display form. A wrong password yields
// models.ErrOwnership, an unknown id models.ErrNotFound.
//
// Ownership is checked by a read before the write; a concurrent change
// between the two is not detected.
func (s *GuestbookService) Update(ctx context.Context, id int64, password, text string) (*models.MessageView, error) {
	if password == "" {
		return nil, models.NewValidationError(ReasonPasswordRequired)
	}
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError(ReasonMessageRequired)
	}
	if utf8.RuneCountInString(text) > models.MaxUpdateTextLength {
		return nil, models.NewValidationError(ReasonUpdateTooLong)
	}

	current, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Matches(current.PasswordHash, password) {
		return nil, models.ErrOwnership
	}

	if err := s.repo.UpdateMessageText(ctx, id, strings.TrimSpace(text), s.now()); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetMessage(ctx, id)
	if err != nil {
		return nil, err
	}
	view := updated.View(s.loc)
	return &view, nil
}
