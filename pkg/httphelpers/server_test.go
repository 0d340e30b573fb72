package httphelpers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// TestRegEndpointSkipsRenderWhenHandlerAlreadyWrote guards against the
// double-write that corrupted the /challenge wire format: a handler that
// writes its own response (raw bytes, a redirect) and returns (nil, nil)
// must not have Rendering.Content render again on top of it.
func TestRegEndpointSkipsRenderWhenHandlerAlreadyWrote(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	engine := gin.New()
	rg := engine.Group("/")

	client.Server.RegEndpoint(ctx, rg, http.MethodPost, "challenge", http.StatusOK,
		func(ctx context.Context, c *gin.Context) (any, error) {
			c.Data(http.StatusOK, "application/jose", []byte("hdr.body.iv.ct.tag"))
			return nil, nil
		})

	req := &http.Request{Method: http.MethodPost, URL: &url.URL{Path: "/challenge"}, Header: http.Header{}}
	engine.ServeHTTP(w, req)

	assert.Equal(t, "hdr.body.iv.ct.tag", w.Body.String())
}

// TestRegEndpointRendersWhenHandlerDidNotWrite confirms the normal JSON
// path is unaffected by the Written() guard.
func TestRegEndpointRendersWhenHandlerDidNotWrite(t *testing.T) {
	ctx := context.Background()
	client := mockClient(ctx, t)
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	engine := gin.New()
	rg := engine.Group("/")

	client.Server.RegEndpoint(ctx, rg, http.MethodGet, "health", http.StatusOK,
		func(ctx context.Context, c *gin.Context) (any, error) {
			return gin.H{"status": "ok"}, nil
		})

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: "/health"}, Header: http.Header{}}
	engine.ServeHTTP(w, req)

	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
