package jose

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeJWT(t *testing.T) {
	t.Run("creates signed JWT with EC key", func(t *testing.T) {
		ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		header := jwt.MapClaims{
			"alg": "ES256",
			"typ": "JWT",
			"kid": "key-1",
		}
		body := jwt.MapClaims{
			"iss": "acs",
			"aud": "https://example.com",
			"iat": 1300819380,
		}

		signedToken, err := MakeJWT(header, body, jwt.SigningMethodES256, ecKey)
		require.NoError(t, err)
		assert.NotEmpty(t, signedToken)

		token, err := jwt.Parse(signedToken, func(token *jwt.Token) (interface{}, error) {
			return &ecKey.PublicKey, nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
	})

	t.Run("creates signed JWT with RSA key", func(t *testing.T) {
		rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)

		header := jwt.MapClaims{
			"alg": "RS256",
			"typ": "JWT",
			"kid": "rsa-key-1",
		}
		body := jwt.MapClaims{
			"iss": "acs",
			"aud": "https://example.com",
			"iat": 1300819380,
		}

		signedToken, err := MakeJWT(header, body, jwt.SigningMethodRS256, rsaKey)
		require.NoError(t, err)
		assert.NotEmpty(t, signedToken)

		token, err := jwt.Parse(signedToken, func(token *jwt.Token) (interface{}, error) {
			return &rsaKey.PublicKey, nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
	})

	t.Run("returns error for nil key", func(t *testing.T) {
		header := jwt.MapClaims{"alg": "ES256"}
		body := jwt.MapClaims{"iss": "test"}

		_, err := MakeJWT(header, body, jwt.SigningMethodES256, nil)
		assert.Error(t, err)
	})

	t.Run("returns error for wrong key type", func(t *testing.T) {
		header := jwt.MapClaims{"alg": "ES256"}
		body := jwt.MapClaims{"iss": "test"}

		_, err := MakeJWT(header, body, jwt.SigningMethodES256, "not-a-key")
		assert.Error(t, err)
	})
}
