// Package httpserver exposes the ACS flow engine (C3/C4/C5) over HTTP, per
// spec.md §6's endpoint table.
package httpserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"acs/pkg/httphelpers"
	"acs/pkg/logger"
	"acs/pkg/model"
	"acs/pkg/trace"
)

// Service owns the gin engine and HTTP server for the ACS.
type Service struct {
	tracer      *trace.Tracer
	cfg         *model.Cfg
	log         *logger.Log
	server      *http.Server
	apiv1       Apiv1
	gin         *gin.Engine
	httpHelpers *httphelpers.Client
}

// New wires the gin router, registers every endpoint, and starts serving.
func New(ctx context.Context, cfg *model.Cfg, apiv1 Apiv1, tracer *trace.Tracer, log *logger.Log) (*Service, error) {
	s := &Service{
		tracer: tracer,
		cfg:    cfg,
		log:    log.New("httpserver"),
		apiv1:  apiv1,
		gin:    gin.New(),
		server: &http.Server{},
	}

	var err error
	s.httpHelpers, err = httphelpers.New(ctx, s.tracer, s.cfg, s.log)
	if err != nil {
		return nil, err
	}

	rgRoot, err := s.httpHelpers.Server.Default(ctx, s.server, s.gin, s.cfg.ACS.APIServer.Addr)
	if err != nil {
		return nil, err
	}

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodGet, "health", http.StatusOK, s.endpointHealth)

	rg3ds := rgRoot.Group("3ds")
	s.httpHelpers.Server.RegEndpoint(ctx, rg3ds, http.MethodPost, "version", http.StatusOK, s.endpointVersion)
	s.httpHelpers.Server.RegEndpoint(ctx, rg3ds, http.MethodPost, "authenticate", http.StatusOK, s.endpointAuthenticate)
	s.httpHelpers.Server.RegEndpoint(ctx, rg3ds, http.MethodPost, "results", http.StatusOK, s.endpointResults)
	s.httpHelpers.Server.RegEndpoint(ctx, rg3ds, http.MethodPost, "final", http.StatusOK, s.endpointFinal)

	s.httpHelpers.Server.RegEndpoint(ctx, rgRoot, http.MethodPost, "challenge", http.StatusOK, s.endpointChallenge)

	rgProcessor := rgRoot.Group("processor/mock/acs")
	s.httpHelpers.Server.RegEndpoint(ctx, rgProcessor, http.MethodPost, "trigger-otp", http.StatusOK, s.endpointTriggerOtp)
	s.httpHelpers.Server.RegEndpoint(ctx, rgProcessor, http.MethodPost, "verify-otp", http.StatusFound, s.endpointVerifyOtp)

	go func() {
		err := s.httpHelpers.Server.ListenAndServe(ctx, s.server, s.cfg.ACS.APIServer)
		if err != nil {
			s.log.Trace("listen_error", "error", err)
		}
	}()

	s.log.Info("Started")

	return s, nil
}

// Close shuts down the HTTP server.
func (s *Service) Close(ctx context.Context) error {
	s.log.Info("Stopped")
	return s.server.Shutdown(ctx)
}
