package pki

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCertChainPEM(t *testing.T, n int) string {
	t.Helper()

	var buf []byte
	for i := 0; i < n; i++ {
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		require.NoError(t, err)

		tmpl := &x509.Certificate{
			SerialNumber: big.NewInt(int64(i + 1)),
			Subject:      pkix.Name{CommonName: "acs-test"},
			NotBefore:    time.Now(),
			NotAfter:     time.Now().Add(time.Hour),
		}

		der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
		require.NoError(t, err)

		buf = append(buf, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "chain.pem")
	require.NoError(t, os.WriteFile(path, buf, 0600))
	return path
}

func TestParseCertificateFromFile(t *testing.T) {
	tts := []struct {
		name          string
		numberOfCerts int
	}{
		{name: "one cert, no chain", numberOfCerts: 1},
		{name: "one cert, one root", numberOfCerts: 2},
		{name: "one cert, one intermediate, one root", numberOfCerts: 3},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCertChainPEM(t, tt.numberOfCerts)

			cert, chain, err := ParseX509CertificateFromFile(path)
			assert.NoError(t, err)
			assert.NotNil(t, cert)
			assert.Equal(t, tt.numberOfCerts, len(chain))
		})
	}
}

func TestBase64EncodeCertificate(t *testing.T) {
	path := writeCertChainPEM(t, 1)
	cert, _, err := ParseX509CertificateFromFile(path)
	require.NoError(t, err)

	encoded := Base64EncodeCertificate(cert)
	assert.NotEmpty(t, encoded)
}
