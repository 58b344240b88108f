package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"golang.org/x/crypto/bcrypt"
)

func TestIssueAndParse(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", 30*time.Minute, "talkstoque")
	require.NoError(t, err)

	token, exp, err := issuer.Issue("ana@loja.com", 4)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "ana@loja.com", claims.Email)
	assert.EqualValues(t, 4, claims.EmployeeID)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Minute, "")
	require.NoError(t, err)
	issuer.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	token, _, err := issuer.Issue("ana@loja.com", 4)
	require.NoError(t, err)

	issuer.WithClock(time.Now)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRejectsForeignSignatureAndAlgorithm(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Minute, "")
	require.NoError(t, err)
	other, err := NewJWTIssuer("other", time.Minute, "")
	require.NoError(t, err)

	token, _, err := other.Issue("ana@loja.com", 4)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		EmployeeID:       4,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ana@loja.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(none)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestParseRequiresEmployeeID(t *testing.T) {
	issuer, err := NewJWTIssuer("s3cret", time.Minute, "")
	require.NoError(t, err)
	token, _, err := issuer.Issue("ana@loja.com", 0)
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("senha123")
	require.NoError(t, err)
	assert.NotEqual(t, "senha123", hash)
	assert.True(t, h.Verify(hash, "senha123"))
	assert.False(t, h.Verify(hash, "errada"))
}
