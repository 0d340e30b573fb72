package apiv1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"acs/internal/acs/model"
	"acs/pkg/acscrypto"
	"acs/pkg/helpers"
)

// kidTruncatedLength is the suspicious kid length spec.md §9's open
// question flags: long enough to look truncated from a 36-char UUID
// string, but short enough that some SDKs are known to send it anyway.
// Decided (DESIGN.md): log a warning and do not repair the kid. A 35-char
// string is never a valid UUID, so the UUID check that follows rejects it.
const kidTruncatedLength = 35

// Challenge implements the mobile challenge endpoint (C4): it receives a
// raw five-segment JWE `CReq`, derives the shared key, decrypts, drives the
// OTP sub-state, and returns the encrypted `CRes` (spec.md §4.4).
func (c *Client) Challenge(ctx context.Context, token string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:Challenge")
	defer span.End()

	kid, enc, err := acscrypto.ParseHeader(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrClientInput, err)
	}
	if len(kid) == kidTruncatedLength {
		c.log.Info("challenge kid has suspicious length, possibly truncated", "kid", kid, "length", len(kid))
	}
	if _, err := uuid.Parse(kid); err != nil {
		return "", fmt.Errorf("%w: kid is not a valid uuid", helpers.ErrClientInput)
	}

	serverTransID, rec, err := c.store.FindByAcsTransId(ctx, kid)
	if err != nil {
		return "", err
	}
	if rec.EphemeralKeys == nil || rec.SDKEphemeralPublicKey == nil {
		return "", fmt.Errorf("%w: transaction has no ephemeral key material", helpers.ErrClientInput)
	}

	platform, err := acscrypto.PlatformForEnc(enc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrClientInput, err)
	}

	derivedKey, err := acscrypto.DeriveKey(rec.SDKEphemeralPublicKey, rec.EphemeralKeys.PrivateKey, platform)
	if err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrCrypto, err)
	}

	plaintext, err := acscrypto.Decrypt(token, derivedKey)
	if err != nil {
		if errors.Is(err, acscrypto.ErrTagMismatch) {
			return "", fmt.Errorf("%w: %v", helpers.ErrClientInput, err)
		}
		return "", fmt.Errorf("%w: %v", helpers.ErrCrypto, err)
	}

	var creq model.MobileCReq
	if err := json.Unmarshal(plaintext, &creq); err != nil {
		return "", fmt.Errorf("%w: malformed challenge request: %v", helpers.ErrClientInput, err)
	}

	var cres model.MobileCRes
	if creq.ChallengeDataEntry == "" {
		if creq.SDKCounterStoA != "" && creq.SDKCounterStoA != "000" {
			c.log.Info("unexpected sdkCounterStoA on creq#0", "sdkCounterStoA", creq.SDKCounterStoA)
		}
		cres = otpPromptCRes(rec, creq)
	} else {
		if creq.SDKCounterStoA != "" && creq.SDKCounterStoA != "001" {
			c.log.Info("unexpected sdkCounterStoA on creq#1", "sdkCounterStoA", creq.SDKCounterStoA)
		}

		success := creq.ChallengeDataEntry == otpCorrect
		authValue, eci := authenticationValueForOutcome(success)
		transStatus := transStatusForOutcome(success)

		rreq := synthesizeRReq(rec, serverTransID, creq.MessageVersion, transStatus, eci, authValue, "01")
		if _, err := c.Results(ctx, rreq); err != nil {
			return "", err
		}

		cres = completionCRes(rec, creq, transStatus)
	}

	responsePlaintext, err := json.Marshal(cres)
	if err != nil {
		return "", fmt.Errorf("%w: marshalling challenge response: %v", helpers.ErrInternal, err)
	}

	token, err = acscrypto.Encrypt(platform, kid, derivedKey, responsePlaintext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", helpers.ErrCrypto, err)
	}
	return token, nil
}

func otpPromptCRes(rec *model.TransactionRecord, creq model.MobileCReq) model.MobileCRes {
	return model.MobileCRes{
		MessageType:               "CRes",
		ThreeDSServerTransID:      creq.ThreeDSServerTransID,
		ACSTransID:                rec.ACSTransID,
		SDKTransID:                rec.SDKTransID,
		ACSCounterAtoS:            "000",
		MessageVersion:            creq.MessageVersion,
		ChallengeCompletionInd:    "N",
		ACSUiType:                 "01",
		ChallengeInfoHeader:       "Authentication Required",
		ChallengeInfoLabel:        "Enter OTP:",
		SubmitAuthenticationLabel: "Submit",
	}
}

func completionCRes(rec *model.TransactionRecord, creq model.MobileCReq, transStatus string) model.MobileCRes {
	return model.MobileCRes{
		MessageType:            "CRes",
		ThreeDSServerTransID:   creq.ThreeDSServerTransID,
		ACSTransID:             rec.ACSTransID,
		SDKTransID:             rec.SDKTransID,
		ACSCounterAtoS:         "001",
		MessageVersion:         creq.MessageVersion,
		ChallengeCompletionInd: "Y",
		TransStatus:            transStatus,
	}
}

// synthesizeRReq builds the RReq the challenge endpoints feed into C3's
// results path once the OTP sub-state resolves (spec.md §9, "result-status
// side effect from challenge").
func synthesizeRReq(rec *model.TransactionRecord, serverTransID, messageVersion, transStatus, eci, authValue, interactionCounter string) *model.RReq {
	if messageVersion == "" {
		messageVersion = protocolVersion
	}
	return &model.RReq{
		ACSTransID:      rec.ACSTransID,
		MessageCategory: "01",
		ECI:             eci,
		MessageType:     "RReq",
		ACSRenderingType: model.AcsRenderingType{
			ACSUiTemplate: "01",
			ACSInterface:  "01",
		},
		DSTransID:            rec.DSTransID,
		AuthenticationMethod: "02",
		AuthenticationType:   "02",
		MessageVersion:       messageVersion,
		SDKTransID:           rec.SDKTransID,
		InteractionCounter:   interactionCounter,
		AuthenticationValue:  authValue,
		TransStatus:          transStatus,
		ThreeDSServerTransID: serverTransID,
	}
}
