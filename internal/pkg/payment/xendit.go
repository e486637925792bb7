package payment

import (
	"context"
	"fmt"

	"github.com/paydesk/payroll-backend-go/internal/config"
	xenditSDK "github.com/xendit/xendit-go/v7"
	"github.com/xendit/xendit-go/v7/payout"
)

// XenditGateway disburses salaries through the official Xendit SDK.
type XenditGateway struct {
	sdk         *xenditSDK.APIClient
	payoutAPI   payout.PayoutApi
	environment string
}

// NewXenditGateway creates a gateway backed by the Xendit payout API.
func NewXenditGateway(cfg config.XenditConfig) *XenditGateway {
	sdk := xenditSDK.NewClient(cfg.APIKey)

	return &XenditGateway{
		sdk:         sdk,
		payoutAPI:   sdk.PayoutApi,
		environment: cfg.Environment,
	}
}

// IsSandbox returns true if running in sandbox mode
func (g *XenditGateway) IsSandbox() bool {
	return g.environment == "sandbox"
}

// Disburse creates a payout. ReferenceID is passed as the idempotency key so
// a retried call returns the original payout instead of paying twice.
func (g *XenditGateway) Disburse(ctx context.Context, req DisbursementRequest) (*DisbursementResponse, error) {
	currency := req.Currency
	if currency == "" {
		currency = "IDR"
	}

	// Convert decimal to float64 for SDK
	amount, _ := req.Amount.Float64()

	channelProps := *payout.NewDigitalPayoutChannelProperties(req.AccountNumber)
	if req.AccountHolderName != "" {
		channelProps.SetAccountHolderName(req.AccountHolderName)
	}

	sdkReq := *payout.NewCreatePayoutRequest(req.ReferenceID, req.ChannelCode, channelProps, float32(amount), currency)
	if req.Description != "" {
		sdkReq.SetDescription(req.Description)
	}

	resp, _, err := g.payoutAPI.CreatePayout(ctx).
		IdempotencyKey(req.ReferenceID).
		CreatePayoutRequest(sdkReq).
		Execute()

	if err != nil {
		return nil, fmt.Errorf("failed to create payout: %w", err)
	}
	if resp.Payout == nil {
		return nil, fmt.Errorf("payout response carries no payout object")
	}

	return &DisbursementResponse{
		ID:     resp.Payout.GetId(),
		Status: string(resp.Payout.GetStatus()),
	}, nil
}
