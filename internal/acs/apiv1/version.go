package apiv1

import (
	"context"
	"strings"

	"acs/internal/acs/model"
)

const protocolVersion = "2.2.0"

// Version returns the card-range lookup for req.CardNumber (spec.md
// §4.3.1). The returned threeDSServerTransID is a fresh, informational-only
// UUID - it is never persisted.
func (c *Client) Version(ctx context.Context, req *model.VersionRequest) (*model.VersionResponse, error) {
	ctx, span := c.tracer.Start(ctx, "apiv1:Client:Version")
	defer span.End()
	_ = ctx

	startRange, endRange := "4000000000000000", "4999999999999999"
	if strings.HasPrefix(req.CardNumber, "515501") {
		startRange, endRange = "5155010000000000", "5155019999999999"
	}

	return &model.VersionResponse{
		ThreeDSServerTransID: newUUID(),
		CardRanges: []model.CardRange{
			{
				ACSInfoInd:              []string{"01", "02"},
				StartRange:              startRange,
				EndRange:                endRange,
				ACSStartProtocolVersion: protocolVersion,
				ACSEndProtocolVersion:   protocolVersion,
			},
		},
	}, nil
}
