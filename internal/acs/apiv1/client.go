// Package apiv1 implements the ACS flow engine (C3), the mobile challenge
// endpoint (C4), and the browser challenge endpoint (C5): together, the
// transaction state machine governing AReq through CReq/CRes to RReq/Final.
package apiv1

import (
	"context"

	"acs/internal/acs/store"
	"acs/pkg/logger"
	acsmodel "acs/pkg/model"
	"acs/pkg/trace"

	"github.com/google/uuid"
)

// Client holds the flow engine's dependencies. Unlike the teacher's
// per-credential-type sub-services, every operation here shares one
// transaction record and one store, so a single receiver carries all of
// C3/C4/C5 rather than splitting into unrelated domain services.
type Client struct {
	cfg    *acsmodel.Cfg
	log    *logger.Log
	tracer *trace.Tracer
	store  *store.TxnStore
}

// New creates the flow engine client.
func New(ctx context.Context, cfg *acsmodel.Cfg, tracer *trace.Tracer, log *logger.Log, txnStore *store.TxnStore) (*Client, error) {
	c := &Client{
		cfg:    cfg,
		log:    log.New("apiv1"),
		tracer: tracer,
		store:  txnStore,
	}

	c.log.Info("Started")

	return c, nil
}

// Close satisfies the process-wiring Close(ctx) error contract; the flow
// engine owns no resources of its own (the redis client belongs to the
// kvclient.Client, which is closed separately).
func (c *Client) Close(ctx context.Context) error {
	return nil
}

func newUUID() string {
	return uuid.NewString()
}
