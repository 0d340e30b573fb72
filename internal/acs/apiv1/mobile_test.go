package apiv1

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"acs/internal/acs/model"
)

func TestSynthesizeRReqDefaultsMessageVersion(t *testing.T) {
	rec := &model.TransactionRecord{ACSTransID: "acs-1", DSTransID: "ds-1", SDKTransID: "sdk-1"}

	rreq := synthesizeRReq(rec, "server-1", "", "Y", eciSuccess, "authvalue", "01")

	assert.Equal(t, protocolVersion, rreq.MessageVersion)
	assert.Equal(t, "acs-1", rreq.ACSTransID)
	assert.Equal(t, "ds-1", rreq.DSTransID)
	assert.Equal(t, "sdk-1", rreq.SDKTransID)
	assert.Equal(t, "server-1", rreq.ThreeDSServerTransID)
	assert.Equal(t, "Y", rreq.TransStatus)
	assert.Equal(t, "RReq", rreq.MessageType)
}

func TestSynthesizeRReqPreservesMessageVersion(t *testing.T) {
	rec := &model.TransactionRecord{ACSTransID: "acs-1"}
	rreq := synthesizeRReq(rec, "server-1", "2.1.0", "N", eciFailure, authenticationValueFailure, "01")
	assert.Equal(t, "2.1.0", rreq.MessageVersion)
}

func TestOtpPromptCResAndCompletionCRes(t *testing.T) {
	rec := &model.TransactionRecord{ACSTransID: "acs-1", SDKTransID: "sdk-1"}
	creq := model.MobileCReq{ThreeDSServerTransID: "server-1", MessageVersion: protocolVersion}

	prompt := otpPromptCRes(rec, creq)
	assert.Equal(t, "N", prompt.ChallengeCompletionInd)
	assert.Equal(t, "000", prompt.ACSCounterAtoS)
	assert.Equal(t, "CRes", prompt.MessageType)

	completion := completionCRes(rec, creq, "Y")
	assert.Equal(t, "Y", completion.ChallengeCompletionInd)
	assert.Equal(t, "001", completion.ACSCounterAtoS)
	assert.Equal(t, "Y", completion.TransStatus)
}
