package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adserve/internal/core/domain"
)

func TestAuthenticateRoundTrip(t *testing.T) {
	v := NewVerifier("secret", "identity")
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleAdvertiser, Email: "a@b.c"}

	token, err := v.Issue(actor, time.Minute)
	require.NoError(t, err)

	got, err := v.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestAuthenticateRejects(t *testing.T) {
	v := NewVerifier("secret", "identity")
	actor := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	expired, err := v.Issue(actor, -time.Minute)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), expired)
	assert.True(t, domain.IsAuthentication(err))
	assert.ErrorIs(t, err, ErrExpiredToken)

	foreign, err := NewVerifier("other", "identity").Issue(actor, time.Minute)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewVerifier("secret", "elsewhere").Issue(actor, time.Minute)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	badRole, err := NewVerifier("secret", "identity").Issue(domain.Actor{ID: uuid.New(), Role: "root"}, time.Minute)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), badRole)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = v.Authenticate(context.Background(), unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = v.Authenticate(context.Background(), "garbage")
	assert.True(t, domain.IsAuthentication(err))
}
