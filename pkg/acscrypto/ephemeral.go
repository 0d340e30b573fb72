// Package acscrypto implements the 3DS cryptographic pipeline: ephemeral
// P-256 key generation, ECDH + ConcatKDF key derivation, the two mobile JWE
// dialects, and the PS256 ACS signed content JWS.
package acscrypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/base64"
	"errors"

	"acs/internal/acs/model"
)

// GenerateEphemeralKeyPair generates a fresh P-256 key pair for a mobile
// challenge flow, mirroring generate_ephemeral_key_pair: the private scalar
// and both public coordinates are returned base64url-no-pad encoded.
func GenerateEphemeralKeyPair() (*model.EphemeralKeyPair, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	d := priv.D.Bytes()
	d = leftPad32(d)

	x := leftPad32(priv.X.Bytes())
	y := leftPad32(priv.Y.Bytes())

	return &model.EphemeralKeyPair{
		PrivateKey: b64(d),
		PublicKey: model.AcsEphemPubKey{
			Kty: "EC",
			Crv: "P-256",
			X:   b64(x),
			Y:   b64(y),
		},
	}, nil
}

// CreateACSURL trims a trailing slash from base and appends /challenge,
// mirroring create_acs_url.
func CreateACSURL(base string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	return base + "/challenge"
}

func b64(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func unb64(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// leftPad32 pads b with leading zeros to exactly 32 bytes; P-256 scalars
// and coordinates are fixed-width but math/big strips leading zero bytes.
func leftPad32(b []byte) []byte {
	if len(b) >= 32 {
		return b[len(b)-32:]
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

var errInvalidCoordinateLength = errors.New("acscrypto: coordinate must be exactly 32 bytes")
