package models

import "time"

// Guestbook limits and defaults. Lengths are counted in characters.
const (
	MaxWriterLength       = 50
	MinPasswordLength     = 4
	MaxPasswordLength     = 10
	MaxCreateTextLength   = 200
	MaxUpdateTextLength   = 120
	DefaultPageSize       = 10
	DefaultTargetPageSize = 8
	DesignerMessageType   = "designer"
	displayDateLayout     = "2006.01.02"
)

// Message is a stored guestbook record.
type Message struct {
	// ID is assigned by the store.
	ID int64
	// Writer is the trimmed display name of the author.
	Writer string
	// PasswordHash is the bcrypt hash of the ownership password.
	PasswordHash string
	// Text is the trimmed message body.
	Text string
	// Type optionally tags the message (e.g. "designer").
	Type *string
	// TargetID optionally references the tagged entity.
	TargetID *int64
	// CreatedAt is set once at creation.
	CreatedAt time.Time
	// UpdatedAt is set at creation and refreshed on every edit.
	UpdatedAt time.Time
}

// MessageFilter scopes a listing to one polymorphic target. A zero value
// matches every message.
type MessageFilter struct {
	Type     *string
	TargetID *int64
}

// MessageView is the display form of a Message returned to clients.
type MessageView struct {
	ID       int64   `json:"id"`
	Writer   string  `json:"writer"`
	Text     string  `json:"text"`
	Date     string  `json:"date"`
	Type     *string `json:"type"`
	TargetID *int64  `json:"targetId"`
}

// MessagePage is one window of a createdAt-descending listing.
type MessagePage struct {
	Messages   []MessageView `json:"messages"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}

// CreateMessageInput carries the fields of a public guestbook post.
type CreateMessageInput struct {
	Writer   string
	Password string
	Text     string
	Type     *string
	TargetID *int64
}

// FormatDate renders t as YYYY.MM.DD in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(displayDateLayout)
}

// View projects m into its display form, formatting dates in loc.
func (m Message) View(loc *time.Location) MessageView {
	return MessageView{
		ID:       m.ID,
		Writer:   m.Writer,
		Text:     m.Text,
		Date:     FormatDate(m.CreatedAt, loc),
		Type:     m.Type,
		TargetID: m.TargetID,
	}
}

// TotalPages returns ceil(total / pageSize), or 0 when pageSize is not positive.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}
