package apiv1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pkgmodel "acs/pkg/model"
)

func TestChallengeDecision(t *testing.T) {
	cases := []struct {
		name       string
		challenge  string
		acctNumber string
		want       bool
	}{
		{"forced challenge", "04", "4000000000001111", true},
		{"forced exemption", "05", "4000000000004001", false},
		{"no preference, challenge tail", "01", "4000000000004001", true},
		{"no preference, no challenge tail", "01", "4000000000001111", false},
		{"empty preference, short acct", "", "111", false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, challengeDecision(c.challenge, c.acctNumber))
		})
	}
}

func TestAcsIdentity(t *testing.T) {
	identity := pkgmodel.ACSIdentity{RefNumber1: "issuer1", RefNumber2: "issuer2"}

	operatorID, refNumber := acsIdentity(identity, "05")
	assert.Equal(t, "MOCK_ACS_NEW", operatorID)
	assert.Equal(t, "issuer2", refNumber)

	operatorID, refNumber = acsIdentity(identity, "04")
	assert.Equal(t, "MOCK_ACS", operatorID)
	assert.Equal(t, "issuer1", refNumber)

	operatorID, refNumber = acsIdentity(identity, "")
	assert.Equal(t, "MOCK_ACS", operatorID)
	assert.Equal(t, "issuer1", refNumber)
}
