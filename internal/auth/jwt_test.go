package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	t.Run("issues and verifies a token", func(t *testing.T) {
		m := NewTokenManager("test-secret", time.Hour)

		token, err := m.Issue(42)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := m.Verify(token)
		require.NoError(t, err)
		require.Equal(t, int64(42), userID)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		issuer := NewTokenManager("secret-a", time.Hour)
		verifier := NewTokenManager("secret-b", time.Hour)

		token, err := issuer.Issue(42)
		require.NoError(t, err)

		_, err = verifier.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		m := NewTokenManager("test-secret", -time.Minute)

		token, err := m.Issue(42)
		require.NoError(t, err)

		_, err = m.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		m := NewTokenManager("test-secret", time.Hour)

		_, err := m.Verify("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
