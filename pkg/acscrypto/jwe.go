package acscrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedEnc is returned when an inbound JWE's protected header
// names an `enc` value neither dialect below implements (spec.md §4.1.3,
// "any other value is rejected before any cryptographic work").
var ErrUnsupportedEnc = errors.New("acscrypto: unsupported enc")

// ErrTagMismatch is returned when JWE authentication fails, covering both
// the HMAC tag (Android) and the GCM tag (iOS).
var ErrTagMismatch = errors.New("acscrypto: authentication tag mismatch")

const (
	encA128CBCHS256 = "A128CBC-HS256"
	encA128GCM      = "A128GCM"
)

// protectedHeader is the JOSE header shared by both dialects.
type protectedHeader struct {
	Alg string `json:"alg"`
	Enc string `json:"enc"`
	Kid string `json:"kid"`
}

// dialect abstracts the two platform-specific JWE codecs behind a single
// interface dispatched on `enc`, so the flow engine never branches on
// platform (spec.md §9, "do not let the branch leak into the flow engine").
type dialect interface {
	encName() string
	ivLen() int
	keyForEncrypt(derived []byte) []byte
	keyForDecrypt(derived []byte) []byte
	seal(key, iv, aad, plaintext []byte) (ciphertext, tag []byte, err error)
	open(key, iv, aad, ciphertext, tag []byte) (plaintext []byte, err error)
}

func dialectFor(enc string) (dialect, error) {
	switch enc {
	case encA128CBCHS256:
		return androidDialect{}, nil
	case encA128GCM:
		return iosDialect{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEnc, enc)
	}
}

func dialectForPlatform(platform string) (dialect, string, error) {
	switch platform {
	case PlatformAndroid:
		return androidDialect{}, encA128CBCHS256, nil
	case PlatformIOS:
		return iosDialect{}, encA128GCM, nil
	default:
		return nil, "", fmt.Errorf("acscrypto: unsupported platform %q", platform)
	}
}

// Encrypt builds a five-part compact JWE for the given platform, using kid
// as the ACS transaction id carried in the protected header (spec.md
// §4.1.3).
func Encrypt(platform, kid string, derivedKey, plaintext []byte) (string, error) {
	d, encName, err := dialectForPlatform(platform)
	if err != nil {
		return "", err
	}

	headerJSON, err := json.Marshal(protectedHeader{Alg: "dir", Enc: encName, Kid: kid})
	if err != nil {
		return "", err
	}
	headerB64 := b64(headerJSON)
	aad := []byte(headerB64)

	iv := make([]byte, d.ivLen())
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	key := d.keyForEncrypt(derivedKey)
	ciphertext, tag, err := d.seal(key, iv, aad, plaintext)
	if err != nil {
		return "", err
	}

	return strings.Join([]string{headerB64, "", b64(iv), b64(ciphertext), b64(tag)}, "."), nil
}

// ParseHeader reads kid and enc from a five-part JWE's protected header
// without performing any cryptographic work, for use before the
// transaction record (and therefore the derived key) is available
// (spec.md §4.4 step 1).
func ParseHeader(token string) (kid, enc string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 5 {
		return "", "", errors.New("acscrypto: malformed jwe, expected 5 segments")
	}

	headerJSON, err := unb64(parts[0])
	if err != nil {
		return "", "", fmt.Errorf("acscrypto: invalid protected header encoding: %w", err)
	}

	var header protectedHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return "", "", fmt.Errorf("acscrypto: invalid protected header: %w", err)
	}

	return header.Kid, header.Enc, nil
}

// Decrypt verifies and decrypts a five-part compact JWE, dispatching on the
// `enc` value found in its protected header.
func Decrypt(token string, derivedKey []byte) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 5 {
		return nil, errors.New("acscrypto: malformed jwe, expected 5 segments")
	}

	headerB64 := parts[0]
	headerJSON, err := unb64(headerB64)
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid protected header encoding: %w", err)
	}
	var header protectedHeader
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("acscrypto: invalid protected header: %w", err)
	}

	d, err := dialectFor(header.Enc)
	if err != nil {
		return nil, err
	}

	iv, err := unb64(parts[2])
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid iv encoding: %w", err)
	}
	ciphertext, err := unb64(parts[3])
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid ciphertext encoding: %w", err)
	}
	tag, err := unb64(parts[4])
	if err != nil {
		return nil, fmt.Errorf("acscrypto: invalid tag encoding: %w", err)
	}

	aad := []byte(headerB64)
	key := d.keyForDecrypt(derivedKey)
	return d.open(key, iv, aad, ciphertext, tag)
}

// androidDialect implements A128CBC-HS256 per spec.md §4.1.3: the 32-byte
// derived key splits into a 16-byte HMAC-SHA-256 MAC key (first half) and a
// 16-byte AES-128 encryption key (second half), with a 16-byte random IV,
// PKCS#7 padding, and a 16-byte truncated HMAC tag over AAD||IV||CT||AL.
type androidDialect struct{}

func (androidDialect) encName() string { return encA128CBCHS256 }
func (androidDialect) ivLen() int      { return 16 }

func (androidDialect) keyForEncrypt(derived []byte) []byte { return derived }
func (androidDialect) keyForDecrypt(derived []byte) []byte { return derived }

func (androidDialect) seal(key, iv, aad, plaintext []byte) ([]byte, []byte, error) {
	if len(key) != 32 {
		return nil, nil, errors.New("acscrypto: derived key must be 32 bytes")
	}
	macKey, encKey := key[:16], key[16:]

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, nil, err
	}
	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	tag := cbcHMACTag(macKey, aad, iv, ciphertext)
	return ciphertext, tag, nil
}

func (androidDialect) open(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, errors.New("acscrypto: derived key must be 32 bytes")
	}
	macKey, encKey := key[:16], key[16:]

	expectedTag := cbcHMACTag(macKey, aad, iv, ciphertext)
	if !hmac.Equal(expectedTag, tag) {
		return nil, ErrTagMismatch
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return nil, errors.New("acscrypto: ciphertext is not a multiple of the block size")
	}
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext)
}

// cbcHMACTag computes the first 16 bytes of HMAC-SHA-256 over
// AAD || IV || Ciphertext || u64be(bitlen(AAD)), per spec.md §4.1.3.
func cbcHMACTag(macKey, aad, iv, ciphertext []byte) []byte {
	al := make([]byte, 8)
	binary.BigEndian.PutUint64(al, uint64(len(aad))*8)

	mac := hmac.New(sha256.New, macKey)
	mac.Write(aad)
	mac.Write(iv)
	mac.Write(ciphertext)
	mac.Write(al)
	return mac.Sum(nil)[:16]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+padLen)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(padLen)
	}
	return padded
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("acscrypto: empty plaintext")
	}
	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > len(data) || padLen > aes.BlockSize {
		return nil, errors.New("acscrypto: invalid pkcs7 padding")
	}
	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, errors.New("acscrypto: invalid pkcs7 padding")
		}
	}
	return data[:len(data)-padLen], nil
}

// iosDialect implements A128GCM per spec.md §4.1.3. The AES-128 key is
// derived-key bytes [16:32) on encryption and [0:16) on decryption
// (preserved asymmetry, see DESIGN.md). The IV is a 12-byte random nonce
// and the 16-byte GCM tag is the JWE authentication tag.
type iosDialect struct{}

func (iosDialect) encName() string { return encA128GCM }
func (iosDialect) ivLen() int      { return 12 }

func (iosDialect) keyForEncrypt(derived []byte) []byte {
	if len(derived) < 32 {
		return derived
	}
	return derived[16:32]
}

func (iosDialect) keyForDecrypt(derived []byte) []byte {
	if len(derived) < 16 {
		return derived
	}
	return derived[0:16]
}

func (iosDialect) seal(key, iv, aad, plaintext []byte) ([]byte, []byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}
	sealed := aead.Seal(nil, iv, plaintext, aad)
	ciphertext := sealed[:len(sealed)-aead.Overhead()]
	tag := sealed[len(sealed)-aead.Overhead():]
	return ciphertext, tag, nil
}

func (iosDialect) open(key, iv, aad, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	sealed := append(append([]byte{}, ciphertext...), tag...)
	plaintext, err := aead.Open(nil, iv, sealed, aad)
	if err != nil {
		return nil, ErrTagMismatch
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 16 {
		return nil, errors.New("acscrypto: gcm key must be 16 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
