package httpserver

import (
	"context"

	"acs/internal/acs/model"
)

// Apiv1 is the subset of the flow engine the HTTP layer depends on.
type Apiv1 interface {
	Version(ctx context.Context, req *model.VersionRequest) (*model.VersionResponse, error)
	Authenticate(ctx context.Context, req *model.AReq) (*model.AuthenticateResponse, error)
	Results(ctx context.Context, req *model.RReq) (*model.RRes, error)
	Final(ctx context.Context, req *model.FinalRequest) (*model.FinalResponse, error)
	Challenge(ctx context.Context, token string) (string, error)
	TriggerOtp(ctx context.Context, req *model.AcsTriggerOtpRequest, redirectOverride string) (string, error)
	VerifyOtp(ctx context.Context, req *model.AcsVerifyOtpRequest, redirectURL string) string
}
