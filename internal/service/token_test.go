package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenMintAndVerify(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: []byte("test-secret"), Issuer: "taskdeck-test"}

	token, err := svc.Mint("user-1")
	require.NoError(t, err)

	subject, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", subject)
}

func TestTokenVerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()

	svc := &TokenService{Secret: []byte("test-secret"), Issuer: "taskdeck-test"}

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Verify("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := &TokenService{Secret: []byte("other-secret"), Issuer: "taskdeck-test"}
		token, err := other.Mint("user-1")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := &TokenService{Secret: []byte("test-secret"), Issuer: "someone-else"}
		token, err := other.Mint("user-1")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		short := &TokenService{
			Secret: []byte("test-secret"),
			Issuer: "taskdeck-test",
			TTL:    -time.Minute,
		}
		token, err := short.Mint("user-1")
		require.NoError(t, err)

		_, err = svc.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
