// Package session encodes admin identities into cookie-safe tokens.
//
// The cookie is attacker-controlled input: every Decode must treat the token
// as untrusted and fold any failure to "no identity".
package session

import (
	"encoding/base64"
	"encoding/json"

	"github.com/atinyakov/exhibition/internal/models"
)

// Codec converts identities to tokens and back.
type Codec interface {
	// Encode serializes id into an opaque token.
	Encode(id models.Identity) (string, error)
	// Decode returns the identity in token, or nil when the token is empty,
	// malformed, or carries an unauthenticated claim.
	Decode(token string) *models.Identity
}

// PlainCodec is a reversible base64(JSON) encoding with no signature and no
// expiry. Anyone who can read or write the cookie can read or forge the
// claim, so it offers neither confidentiality nor integrity.
type PlainCodec struct{}

// NewPlainCodec returns the unsigned codec.
func NewPlainCodec() PlainCodec {
	return PlainCodec{}
}

// Encode implements Codec.
func (PlainCodec) Encode(id models.Identity) (string, error) {
	raw, err := json.Marshal(id)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode implements Codec.
func (PlainCodec) Decode(token string) *models.Identity {
	if token == "" {
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil
	}
	if !id.IsAuthenticated {
		return nil
	}
	return &id
}
