package apiv1

import (
	"context"
	"errors"
	"fmt"

	"acs/internal/acs/model"
	"acs/pkg/helpers"
)

// Results processes an RReq: it loads the record the matching authenticate
// call created, stores the reported outcome on it, and acknowledges with an
// RRes (spec.md §4.3.3). A record miss is reported as client input, not
// not-found, faithful to original_source/src/handlers.rs treating an
// unknown threeDSServerTransID as a 400 at this endpoint.
func (c *Client) Results(ctx context.Context, req *model.RReq) (*model.RRes, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:Results")
	defer span.End()

	rec, err := c.store.Get(ctx, req.ThreeDSServerTransID)
	if err != nil {
		return nil, classifyLookupMiss(err, "transaction not found")
	}

	reqCopy := *req
	rec.ResultsRequest = &reqCopy

	if err := c.store.Update(ctx, req.ThreeDSServerTransID, rec); err != nil {
		return nil, err
	}

	return &model.RRes{
		DSTransID:            rec.DSTransID,
		MessageType:          "RRes",
		ThreeDSServerTransID: req.ThreeDSServerTransID,
		ACSTransID:           rec.ACSTransID,
		SDKTransID:           rec.SDKTransID,
		ResultsStatus:        "01",
		MessageVersion:       protocolVersion,
	}, nil
}

// Final processes a FinalRequest: it returns the outcome an earlier
// Results call recorded (spec.md §4.3.3). Neither a missing record nor a
// record with no recorded results is treated as not-found; both surface as
// client input, mirroring original_source/src/handlers.rs's final_handler.
func (c *Client) Final(ctx context.Context, req *model.FinalRequest) (*model.FinalResponse, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:Final")
	defer span.End()

	rec, err := c.store.Get(ctx, req.ThreeDSServerTransID)
	if err != nil {
		return nil, classifyLookupMiss(err, "transaction not found")
	}

	if rec.ResultsRequest == nil {
		return nil, fmt.Errorf("%w: results not found for this transaction", helpers.ErrClientInput)
	}

	rreq := *rec.ResultsRequest

	return &model.FinalResponse{
		ECI:                  rreq.ECI,
		AuthenticationValue:  rreq.AuthenticationValue,
		ThreeDSServerTransID: req.ThreeDSServerTransID,
		ResultsResponse: model.RRes{
			DSTransID:            rec.DSTransID,
			MessageType:          "RRes",
			ThreeDSServerTransID: req.ThreeDSServerTransID,
			ACSTransID:           rec.ACSTransID,
			SDKTransID:           rec.SDKTransID,
			ResultsStatus:        "01",
			MessageVersion:       protocolVersion,
		},
		ResultsRequest: rreq,
		TransStatus:    rreq.TransStatus,
	}, nil
}

// classifyLookupMiss turns a store not-found into client input, the one
// exception to pkg/helpers's usual not-found-is-404 rule (spec.md §7).
func classifyLookupMiss(err error, message string) error {
	if errors.Is(err, helpers.ErrNotFound) {
		return fmt.Errorf("%w: %s", helpers.ErrClientInput, message)
	}
	return err
}
