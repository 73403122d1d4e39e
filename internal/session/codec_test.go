package session

import (
	"encoding/base64"
	"testing"

	"github.com/atinyakov/exhibition/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainCodec_RoundTrip(t *testing.T) {
	codec := NewPlainCodec()

	for _, name := range []string{"khvd", "", "관리자", `quote"and\slash`} {
		id := models.Identity{Username: name, IsAuthenticated: true}

		token, err := codec.Encode(id)
		require.NoError(t, err)

		got := codec.Decode(token)
		require.NotNil(t, got, "username %q", name)
		assert.Equal(t, id, *got)
	}
}

func TestPlainCodec_MatchesBase64JSON(t *testing.T) {
	token, err := NewPlainCodec().Encode(models.Identity{Username: "admin", IsAuthenticated: true})
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"admin","isAuthenticated":true}`, string(raw))
}

func TestPlainCodec_DecodeRejects(t *testing.T) {
	enc := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 garbage", enc("\x00\x01garbage")},
		{"json array", enc(`[1,2,3]`)},
		{"unauthenticated", enc(`{"username":"admin","isAuthenticated":false}`)},
		{"missing flag", enc(`{"username":"admin"}`)},
		{"wrong flag type", enc(`{"username":"admin","isAuthenticated":"yes"}`)},
	}

	codec := NewPlainCodec()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Nil(t, codec.Decode(tc.token))
			})
		})
	}
}
