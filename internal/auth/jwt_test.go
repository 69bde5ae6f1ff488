package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, 3, "ana@example.com", RoleAdmin, secret)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, int64(3), claims.OrganizationID)
	assert.Equal(t, "siteproof", claims.Issuer)
	assert.True(t, claims.IsAdmin())
}

func TestValidateAccessTokenRejects(t *testing.T) {
	good, err := GenerateAccessToken(7, 3, "ana@example.com", "", secret)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:         7,
		OrganizationID: 3,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	noOrg, err := GenerateAccessToken(7, 0, "ana@example.com", "", secret)
	require.NoError(t, err)

	testCases := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: good, secret: "other"},
		{name: "expired", token: expiredToken, secret: secret},
		{name: "garbage", token: "not.a.token", secret: secret},
		{name: "missing organization", token: noOrg, secret: secret},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tc.token, tc.secret)
			assert.Error(t, err)
		})
	}
}
