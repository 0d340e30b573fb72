package apiv1

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationValueForOutcomeFailure(t *testing.T) {
	value, eci := authenticationValueForOutcome(false)
	assert.Equal(t, authenticationValueFailure, value)
	assert.Equal(t, eciFailure, eci)
}

func TestAuthenticationValueForOutcomeSuccess(t *testing.T) {
	value, eci := authenticationValueForOutcome(true)
	assert.Equal(t, eciSuccess, eci)

	decoded, err := base64.StdEncoding.DecodeString(value)
	require.NoError(t, err)
	require.Len(t, decoded, 20)

	assert.Equal(t, byte(0x02), decoded[0])
	assert.Equal(t, byte(0x01), decoded[1])
	for i := 0; i < 18; i++ {
		assert.Equal(t, byte((17*i+13+0x4A)%256), decoded[2+i])
	}
}

func TestTransStatusForOutcome(t *testing.T) {
	assert.Equal(t, "Y", transStatusForOutcome(true))
	assert.Equal(t, "N", transStatusForOutcome(false))
}
