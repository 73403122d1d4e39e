// Package models defines the core data structures of the exhibition site:
// session identities, guestbook messages and their display projections.
package models

// Identity is the claim carried by a session token. It is produced only by a
// successful admin credential check.
type Identity struct {
	// Username is the admin login that authenticated.
	Username string `json:"username"`
	// IsAuthenticated must be true for the claim to be honoured.
	IsAuthenticated bool `json:"isAuthenticated"`
}
