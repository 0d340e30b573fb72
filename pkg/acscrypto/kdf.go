package acscrypto

import (
	"crypto/ecdh"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"acs/internal/acs/model"
)

// Platform tags accepted by DeriveKey.
const (
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// sdkReferenceNumber is fixed per platform, per spec.md §4.1.2.
var sdkReferenceNumber = map[string]string{
	PlatformAndroid: "3DS_LOA_SDK_JTPL_020200_00788",
	PlatformIOS:     "3DS_LOA_SDK_JTPL_020200_00805",
}

// PlatformForEnc maps a JWE protected header's `enc` value to the platform
// tag DeriveKey expects, per spec.md §4.1.3's platform-detection rule:
// A128CBC-HS256 implies Android, A128GCM implies iOS.
func PlatformForEnc(enc string) (string, error) {
	switch enc {
	case encA128CBCHS256:
		return PlatformAndroid, nil
	case encA128GCM:
		return PlatformIOS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEnc, enc)
	}
}

// DeriveKey computes the ECDH + ConcatKDF derived key (spec.md §4.1.2)
// between the ACS's ephemeral private scalar and the SDK's ephemeral public
// key, for the given platform. The returned key is always the full 32
// bytes; callers slice as dictated by the JWE dialect (§4.1.3).
func DeriveKey(sdkPub *model.SDKEphemeralPublicKey, acsPrivateKeyB64 string, platform string) ([]byte, error) {
	refNumber, ok := sdkReferenceNumber[platform]
	if !ok {
		return nil, fmt.Errorf("acscrypto: unsupported platform %q", platform)
	}

	z, err := ecdhSharedSecret(sdkPub, acsPrivateKeyB64)
	if err != nil {
		return nil, err
	}

	otherInfo := concatOtherInfo(refNumber)
	return concatKDF(z, otherInfo), nil
}

// ecdhSharedSecret reconstructs the SDK's public point and the ACS's
// private scalar and returns the 32-byte x-coordinate of their ECDH shared
// point (spec.md §4.1.2 steps 1-3).
func ecdhSharedSecret(sdkPub *model.SDKEphemeralPublicKey, acsPrivateKeyB64 string) ([]byte, error) {
	x, err := unb64(sdkPub.X)
	if err != nil || len(x) != 32 {
		return nil, fmt.Errorf("acscrypto: %w: x", errInvalidCoordinateLength)
	}
	y, err := unb64(sdkPub.Y)
	if err != nil || len(y) != 32 {
		return nil, fmt.Errorf("acscrypto: %w: y", errInvalidCoordinateLength)
	}

	uncompressed := make([]byte, 0, 65)
	uncompressed = append(uncompressed, 0x04)
	uncompressed = append(uncompressed, x...)
	uncompressed = append(uncompressed, y...)

	curve := ecdh.P256()
	peerPub, err := curve.NewPublicKey(uncompressed)
	if err != nil {
		return nil, fmt.Errorf("acscrypto: sdk public key is off-curve: %w", err)
	}

	dBytes, err := unb64(acsPrivateKeyB64)
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid acs private key encoding: %w", err)
	}
	priv, err := curve.NewPrivateKey(dBytes)
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid acs private key: %w", err)
	}

	return priv.ECDH(peerPub)
}

// concatOtherInfo builds OtherInfo = algorithmID || partyUInfo || partyVInfo
// || suppPubInfo per spec.md §4.1.2 step 4.
func concatOtherInfo(sdkRefNumber string) []byte {
	algorithmID := make([]byte, 4)
	partyUInfo := make([]byte, 4)

	partyVInfo := make([]byte, 4+len(sdkRefNumber))
	binary.BigEndian.PutUint32(partyVInfo, uint32(len(sdkRefNumber)))
	copy(partyVInfo[4:], sdkRefNumber)

	suppPubInfo := make([]byte, 4)
	binary.BigEndian.PutUint32(suppPubInfo, 256)

	otherInfo := make([]byte, 0, len(algorithmID)+len(partyUInfo)+len(partyVInfo)+len(suppPubInfo))
	otherInfo = append(otherInfo, algorithmID...)
	otherInfo = append(otherInfo, partyUInfo...)
	otherInfo = append(otherInfo, partyVInfo...)
	otherInfo = append(otherInfo, suppPubInfo...)
	return otherInfo
}

// concatKDF computes SHA-256(counter=1 || Z || OtherInfo), the single-step
// NIST SP 800-56A ConcatKDF round spec.md §4.1.2 step 5 requires.
func concatKDF(z, otherInfo []byte) []byte {
	counter := []byte{0x00, 0x00, 0x00, 0x01}
	h := sha256.New()
	h.Write(counter)
	h.Write(z)
	h.Write(otherInfo)
	return h.Sum(nil)
}
