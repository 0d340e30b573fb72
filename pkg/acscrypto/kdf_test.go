package acscrypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acs/internal/acs/model"
)

func TestDeriveKeyIsSymmetric(t *testing.T) {
	acsPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)
	sdkPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)

	sdkPub := &model.SDKEphemeralPublicKey{
		Kty: sdkPair.PublicKey.Kty,
		Crv: sdkPair.PublicKey.Crv,
		X:   sdkPair.PublicKey.X,
		Y:   sdkPair.PublicKey.Y,
	}
	acsPub := &model.SDKEphemeralPublicKey{
		Kty: acsPair.PublicKey.Kty,
		Crv: acsPair.PublicKey.Crv,
		X:   acsPair.PublicKey.X,
		Y:   acsPair.PublicKey.Y,
	}

	// KDF(sdk_pub, acs_priv, platform) must equal KDF(acs_pub, sdk_priv,
	// platform): both sides of the ECDH exchange land on the same shared
	// point (spec.md §8, property 2).
	fromACS, err := DeriveKey(sdkPub, acsPair.PrivateKey, PlatformAndroid)
	require.NoError(t, err)
	fromSDK, err := DeriveKey(acsPub, sdkPair.PrivateKey, PlatformAndroid)
	require.NoError(t, err)

	assert.Equal(t, fromACS, fromSDK)
	assert.Len(t, fromACS, 32)
}

func TestDeriveKeyDiffersByPlatform(t *testing.T) {
	acsPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)
	sdkPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)

	sdkPub := &model.SDKEphemeralPublicKey{
		Kty: sdkPair.PublicKey.Kty,
		Crv: sdkPair.PublicKey.Crv,
		X:   sdkPair.PublicKey.X,
		Y:   sdkPair.PublicKey.Y,
	}

	android, err := DeriveKey(sdkPub, acsPair.PrivateKey, PlatformAndroid)
	require.NoError(t, err)
	ios, err := DeriveKey(sdkPub, acsPair.PrivateKey, PlatformIOS)
	require.NoError(t, err)

	assert.NotEqual(t, android, ios)
}

func TestDeriveKeyRejectsUnknownPlatform(t *testing.T) {
	acsPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)
	sdkPub := &model.SDKEphemeralPublicKey{X: acsPair.PublicKey.X, Y: acsPair.PublicKey.Y}

	_, err = DeriveKey(sdkPub, acsPair.PrivateKey, "windows")
	assert.Error(t, err)
}

func TestDeriveKeyRejectsOffCurvePoint(t *testing.T) {
	acsPair, err := GenerateEphemeralKeyPair()
	require.NoError(t, err)

	bogus := &model.SDKEphemeralPublicKey{
		X: b64(make([]byte, 32)),
		Y: b64(make([]byte, 32)),
	}

	_, err = DeriveKey(bogus, acsPair.PrivateKey, PlatformAndroid)
	assert.Error(t, err)
}
