package acscrypto

import (
	"crypto/rsa"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"acs/internal/acs/model"
	"acs/pkg/jose"
	"acs/pkg/pki"
)

// CreateACSSignedContent builds the compact JWS an SDK-bound challenge
// request carries as `acsSignedContent`: header `x5c` holds the ACS's
// certificate chain and the payload echoes the transaction identity and
// ephemeral public key, mirroring create_acs_signed_content. The signing
// algorithm is PS256 for an RSA key and, for an EC key, the ES algorithm
// matching its curve (ES256 for P-256), following
// create_acs_signed_content's try-RSA-then-EC key loading.
func CreateACSSignedContent(certPath, keyPath, acsTransID, acsRefNumber, acsURL string, ephemPubKey model.AcsEphemPubKey) (string, error) {
	_, chain, err := pki.ParseX509CertificateFromFile(certPath)
	if err != nil {
		return "", fmt.Errorf("acscrypto: loading acs certificate: %w", err)
	}
	key, err := pki.ParseKeyFromFile(keyPath)
	if err != nil {
		return "", fmt.Errorf("acscrypto: loading acs private key: %w", err)
	}

	x5c := make([]string, 0, len(chain))
	for _, cert := range chain {
		x5c = append(x5c, pki.Base64EncodeCertificate(cert))
	}

	method, err := signingMethodForACSKey(key)
	if err != nil {
		return "", err
	}

	header := jwt.MapClaims{"x5c": x5c}
	body := jwt.MapClaims{
		"acsTransID":   acsTransID,
		"acsRefNumber": acsRefNumber,
		"acsURL":       acsURL,
		"acsEphemPubKey": jwt.MapClaims{
			"kty": ephemPubKey.Kty,
			"crv": ephemPubKey.Crv,
			"x":   ephemPubKey.X,
			"y":   ephemPubKey.Y,
		},
	}

	return jose.MakeJWT(header, body, method, key)
}

// signingMethodForACSKey picks PS256 for RSA keys (the EMVCo-mandated
// algorithm, spec.md §4.1.3) and defers to jose.GetSigningMethodFromKey
// (ES256, ES384 or ES512 by curve) for EC keys.
func signingMethodForACSKey(key any) (jwt.SigningMethod, error) {
	if _, ok := key.(*rsa.PrivateKey); ok {
		return jwt.SigningMethodPS256, nil
	}
	return jose.GetSigningMethodFromKey(key), nil
}
