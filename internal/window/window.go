// Package window evaluates the configured teaser and exhibition periods.
package window

import "time"

// Window holds the four instants that bound the teaser and the exhibition.
// It is built once from configuration and never mutated.
type Window struct {
	TeaserStart     time.Time
	TeaserEnd       time.Time
	ExhibitionStart time.Time
	ExhibitionEnd   time.Time
}

// New returns a Window over the given instants.
func New(teaserStart, teaserEnd, exhibitionStart, exhibitionEnd time.Time) Window {
	return Window{
		TeaserStart:     teaserStart,
		TeaserEnd:       teaserEnd,
		ExhibitionStart: exhibitionStart,
		ExhibitionEnd:   exhibitionEnd,
	}
}

// IsTeaserOpen reports whether now falls in [TeaserStart, TeaserEnd).
func (w Window) IsTeaserOpen(now time.Time) bool {
	return !now.Before(w.TeaserStart) && now.Before(w.TeaserEnd)
}

// IsExhibitionOpen reports whether now falls in [ExhibitionStart, ExhibitionEnd].
func (w Window) IsExhibitionOpen(now time.Time) bool {
	return !now.Before(w.ExhibitionStart) && !now.After(w.ExhibitionEnd)
}

// IsBeforeExhibition reports whether now precedes ExhibitionStart.
func (w Window) IsBeforeExhibition(now time.Time) bool {
	return now.Before(w.ExhibitionStart)
}
