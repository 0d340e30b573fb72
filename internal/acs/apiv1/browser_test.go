package apiv1

import (
	"bytes"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessingErrorRedirect(t *testing.T) {
	redirect := processingErrorRedirect("https://merchant.example/return")

	parsed, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.Equal(t, "U", parsed.Query().Get("transStatus"))
	assert.Equal(t, "processing_error", parsed.Query().Get("error"))
}

func TestChallengeHTMLTemplateRendersFormAction(t *testing.T) {
	var buf bytes.Buffer
	err := challengeHTMLTemplate.Execute(&buf, challengeHTMLData{
		FallbackRedirectURL:  "https://merchant.example/cancel",
		ThreeDSServerTransID: "server-1",
		PayEndpoint:          "https://acs.example/processor/mock/acs/verify-otp?redirectUrl=x",
	})
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, "server-1")
	assert.Contains(t, html, "https://acs.example/processor/mock/acs/verify-otp?redirectUrl=x")
	assert.Contains(t, html, "https://merchant.example/cancel")
}
