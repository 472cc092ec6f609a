package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"os"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		panic(err)
	}

	privateKey = key
	publicKey = &key.PublicKey

	os.Exit(m.Run())
}

func TestSignAndValidateUserID(t *testing.T) {
	sign, err := Sign(18)
	assert.NoError(t, err)

	id, err := ValidUserID(sign)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func signClaims(t *testing.T, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(privateKey)
	assert.NoError(t, err)

	return signedToken
}

func TestValidUserID_InvalidAudience(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), id)
}

func TestValidUserID_InvalidIssuer(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := ValidUserID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, int64(0), id)
}

func TestValidUserID_Expired(t *testing.T) {
	signedToken := signClaims(t, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		Issuer:    Issuer,
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Subject:   "15",
	})

	id, err := ValidUserID(signedToken)
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "token is expired")
	}
	assert.Equal(t, int64(0), id)
}
