package jwt_test

import (
	"testing"
	"time"

	"golden_hour/internal/lib/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := jwt.NewToken("principal-1", secret, time.Hour)
	require.NoError(t, err)

	identity, err := jwt.Parse(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "principal-1", identity)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := jwt.NewToken("principal-1", []byte("right"), time.Hour)
	require.NoError(t, err)

	_, err = jwt.Parse(token, []byte("wrong"))
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := jwt.NewToken("principal-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.Parse(token, secret)
	require.ErrorIs(t, err, jwt.ErrInvalidToken)
}
