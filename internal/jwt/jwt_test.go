package jwt

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func useTestKeys(t *testing.T) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}

	UseKeys(key)
}

func TestSignAndValidatePlayerID(t *testing.T) {
	useTestKeys(t)

	signed, err := Sign(18)
	assert.NoError(t, err)

	id, err := ValidPlayerID(signed)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	useTestKeys(t)

	signed := signWithClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	id, err := ValidPlayerID(signed)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	useTestKeys(t)

	signed := signWithClaims(t, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	id, err := ValidPlayerID(signed)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_WrongSigningMethod(t *testing.T) {
	useTestKeys(t)

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodHS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		Issuer:   Issuer,
		Subject:  "15",
	})

	signed, err := token.SignedString([]byte("secret"))
	assert.NoError(t, err)

	_, err = ValidPlayerID(signed)
	assert.Error(t, err)
}

func TestValidPlayerID_Garbage(t *testing.T) {
	useTestKeys(t)

	_, err := ValidPlayerID("not-a-token")
	assert.Error(t, err)
}

func signWithClaims(t *testing.T, claims jwtgo.RegisteredClaims) string {
	t.Helper()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims)
	signed, err := token.SignedString(privateKey)
	if err != nil {
		t.Fatal(err)
	}

	return signed
}
