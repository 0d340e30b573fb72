package apiv1

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"

	"acs/internal/acs/model"
	"acs/pkg/helpers"
)

//go:embed templates/challenge.html
var challengeHTMLSource string

var challengeHTMLTemplate = template.Must(template.New("challenge").Parse(challengeHTMLSource))

type challengeHTMLData struct {
	FallbackRedirectURL  string
	ThreeDSServerTransID string
	PayEndpoint          string
}

// TriggerOtp implements the browser trigger side of C5 (spec.md §4.5): it
// parses the `creq` form field as raw JSON (not base64 - an intentional
// deviation from EMVCo for this mock), recovers the merchant redirect URL
// from the stored record, and renders the OTP-entry HTML page.
// redirectOverride is the inbound `redirectUrl` query parameter, if any,
// and takes precedence over the record's stored redirect URL.
func (c *Client) TriggerOtp(ctx context.Context, req *model.AcsTriggerOtpRequest, redirectOverride string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:TriggerOtp")
	defer span.End()

	var creq model.ChallengeRequest
	if err := json.Unmarshal([]byte(req.Creq), &creq); err != nil {
		return "", fmt.Errorf("%w: malformed creq: %v", helpers.ErrClientInput, err)
	}
	if creq.ThreeDSServerTransID == "" {
		return "", fmt.Errorf("%w: creq is missing threeDSServerTransID", helpers.ErrClientInput)
	}

	rec, err := c.store.Get(ctx, creq.ThreeDSServerTransID)
	if err != nil {
		return "", err
	}

	redirectURL := rec.RedirectURL
	if redirectOverride != "" {
		redirectURL = redirectOverride
	}

	payEndpoint := fmt.Sprintf("%s/processor/mock/acs/verify-otp?redirectUrl=%s",
		c.cfg.Common.ServerBase, url.QueryEscape(redirectURL))

	var buf bytes.Buffer
	if err := challengeHTMLTemplate.Execute(&buf, challengeHTMLData{
		FallbackRedirectURL:  redirectURL,
		ThreeDSServerTransID: creq.ThreeDSServerTransID,
		PayEndpoint:          payEndpoint,
	}); err != nil {
		return "", fmt.Errorf("%w: rendering challenge page: %v", helpers.ErrInternal, err)
	}

	return buf.String(), nil
}

// VerifyOtp implements the browser verify side of C5 (spec.md §4.5). It
// never returns an error: any internal failure is reported to the browser
// as a 302 redirect carrying transStatus=U, matching the design's "never
// return a 5xx to the browser" propagation policy. redirectURL is the
// `redirectUrl` query parameter trigger-otp embedded in its form action,
// already resolved to the merchant URL the browser should land on.
func (c *Client) VerifyOtp(ctx context.Context, req *model.AcsVerifyOtpRequest, redirectURL string) string {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:VerifyOtp")
	defer span.End()

	rec, err := c.store.Get(ctx, req.ThreeDSServerTransID)
	if err != nil {
		c.log.Info("verify-otp: transaction lookup failed", "error", err.Error())
		return processingErrorRedirect(redirectURL)
	}

	success := req.OTP == otpCorrect
	authValue, eci := authenticationValueForOutcome(success)
	transStatus := transStatusForOutcome(success)

	rreq := synthesizeRReq(rec, req.ThreeDSServerTransID, protocolVersion, transStatus, eci, authValue, "01")
	if _, err := c.Results(ctx, rreq); err != nil {
		c.log.Info("verify-otp: recording results failed", "error", err.Error())
		return processingErrorRedirect(redirectURL)
	}

	values := url.Values{}
	values.Set("transStatus", transStatus)
	values.Set("threeDSServerTransID", req.ThreeDSServerTransID)
	values.Set("eci", eci)
	values.Set("authenticationValue", authValue)
	return redirectURL + "?" + values.Encode()
}

func processingErrorRedirect(redirectURL string) string {
	values := url.Values{}
	values.Set("transStatus", "U")
	values.Set("error", "processing_error")
	return redirectURL + "?" + values.Encode()
}
