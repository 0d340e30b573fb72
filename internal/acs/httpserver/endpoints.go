package httpserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"acs/internal/acs/model"
)

func (s *Service) endpointHealth(ctx context.Context, c *gin.Context) (any, error) {
	return &model.HealthReply{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   "acs",
	}, nil
}

func (s *Service) endpointVersion(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.VersionRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		return nil, err
	}
	return s.apiv1.Version(ctx, request)
}

func (s *Service) endpointAuthenticate(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.AReq{}
	if err := c.ShouldBindJSON(request); err != nil {
		return nil, err
	}
	return s.apiv1.Authenticate(ctx, request)
}

func (s *Service) endpointResults(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.RReq{}
	if err := c.ShouldBindJSON(request); err != nil {
		return nil, err
	}
	return s.apiv1.Results(ctx, request)
}

func (s *Service) endpointFinal(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.FinalRequest{}
	if err := c.ShouldBindJSON(request); err != nil {
		return nil, err
	}
	return s.apiv1.Final(ctx, request)
}

// endpointChallenge is the mobile SDK's CReq/CRes transport (C4): the body
// is the raw compact JWE, not JSON, so it is read directly rather than bound.
func (s *Service) endpointChallenge(ctx context.Context, c *gin.Context) (any, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	token, err := s.apiv1.Challenge(ctx, string(body))
	if err != nil {
		return nil, err
	}

	c.Data(http.StatusOK, "application/jose", []byte(token))
	return nil, nil
}

// endpointTriggerOtp renders the browser OTP-entry page (C5). The browser
// posts `creq` as a form field rather than the mobile SDK's JWE transport.
func (s *Service) endpointTriggerOtp(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.AcsTriggerOtpRequest{}
	if err := c.ShouldBind(request); err != nil {
		return nil, err
	}

	page, err := s.apiv1.TriggerOtp(ctx, request, c.Query("redirectUrl"))
	if err != nil {
		return nil, err
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
	return nil, nil
}

// endpointVerifyOtp checks the entered OTP and redirects back to the
// merchant with the authentication outcome appended as query parameters.
// VerifyOtp never errors: any backend failure still produces a redirect.
func (s *Service) endpointVerifyOtp(ctx context.Context, c *gin.Context) (any, error) {
	request := &model.AcsVerifyOtpRequest{}
	if err := c.ShouldBind(request); err != nil {
		return nil, err
	}

	redirectURL := s.apiv1.VerifyOtp(ctx, request, c.Query("redirectUrl"))
	c.Redirect(http.StatusFound, redirectURL)
	return nil, nil
}
