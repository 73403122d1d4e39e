package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks business rules and fills the parsed exhibition fields.
// Load calls it automatically.
func (o *Options) Validate() error {
	if o.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if strings.TrimSpace(o.Admin.Username) == "" || o.Admin.Password == "" {
		return errors.New("admin.username and admin.password are required")
	}
	if o.Session.Secret != "" && len(o.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(o.Session.Secret))
	}
	if o.Guestbook.MaxPageSize <= 0 {
		return fmt.Errorf("guestbook.max_page_size must be > 0 (got %d)", o.Guestbook.MaxPageSize)
	}
	if o.Guestbook.BcryptCost < bcrypt.MinCost || o.Guestbook.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("guestbook.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, o.Guestbook.BcryptCost)
	}
	if err := o.Exhibition.validate(); err != nil {
		return fmt.Errorf("exhibition: %w", err)
	}
	return nil
}

func (e *ExhibitionConfig) validate() error {
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return fmt.Errorf("timezone %q: %w", e.Timezone, err)
	}
	e.Location = loc

	fields := []struct {
		name string
		raw  string
		dst  *time.Time
	}{
		{"teaser_start", e.TeaserStartRaw, &e.TeaserStart},
		{"teaser_end", e.TeaserEndRaw, &e.TeaserEnd},
		{"exhibition_start", e.ExhibitionStartRaw, &e.ExhibitionStart},
		{"exhibition_end", e.ExhibitionEndRaw, &e.ExhibitionEnd},
	}
	for _, f := range fields {
		t, err := ParseInstant(f.raw, loc)
		if err != nil {
			return fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = t
	}

	if e.TeaserEnd.Before(e.TeaserStart) {
		return errors.New("teaser_end must not precede teaser_start")
	}
	if e.ExhibitionEnd.Before(e.ExhibitionStart) {
		return errors.New("exhibition_end must not precede exhibition_start")
	}
	return nil
}

// ParseInstant parses an RFC3339 timestamp. A timestamp without an offset
// ("2025-02-01T00:00:00") is read in loc.
func ParseInstant(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02T15:04:05", raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q", raw)
	}
	return t, nil
}
