package clients

import (
	"context"
	"fmt"
)

// CoordinatorClient talks to the central coordinator. Transport failures
// are converted into failure-shaped responses carrying the error text; the
// caller decides whether and when to retry.
type CoordinatorClient struct {
	base *BaseClient
}

// NewCoordinatorClient builds the client.
func NewCoordinatorClient(baseURL string, httpClient HTTPDoer) *CoordinatorClient {
	return &CoordinatorClient{base: NewBaseClient(baseURL, httpClient)}
}

// Register announces this station to the coordinator.
func (c *CoordinatorClient) Register(ctx context.Context, req StationHeartbeatRequest) StationStatusResponse {
	var resp StationStatusResponse
	if err := c.base.PostJSON(ctx, "/api/stations/register", req, &resp); err != nil {
		return StationStatusResponse{Success: false, Message: fmt.Sprintf("register failed: %v", err)}
	}
	return resp
}

// Heartbeat reports liveness and occupancy.
func (c *CoordinatorClient) Heartbeat(ctx context.Context, req StationHeartbeatRequest) StationStatusResponse {
	var resp StationStatusResponse
	if err := c.base.PostJSON(ctx, "/api/stations/heartbeat", req, &resp); err != nil {
		return StationStatusResponse{Success: false, Message: fmt.Sprintf("heartbeat failed: %v", err)}
	}
	return resp
}

// SyncSession pushes the local session snapshot.
func (c *CoordinatorClient) SyncSession(ctx context.Context, req SessionSyncRequest) SessionSyncResponse {
	var resp SessionSyncResponse
	if err := c.base.PostJSON(ctx, "/api/sessions/sync", req, &resp); err != nil {
		return SessionSyncResponse{Success: false, SessionID: req.SessionID, Message: fmt.Sprintf("sync failed: %v", err)}
	}
	return resp
}

// Login authenticates a customer at this kiosk.
func (c *CoordinatorClient) Login(ctx context.Context, req LoginRequest) LoginResponse {
	var resp LoginResponse
	if err := c.base.PostJSON(ctx, "/api/auth/login", req, &resp); err != nil {
		return LoginResponse{Success: false, Message: fmt.Sprintf("login failed: %v", err)}
	}
	return resp
}

// ProcessBilling records a payment.
func (c *CoordinatorClient) ProcessBilling(ctx context.Context, req BillingRequest) BillingResponse {
	var resp BillingResponse
	if err := c.base.PostJSON(ctx, "/api/billing/process", req, &resp); err != nil {
		return BillingResponse{Success: false, Amount: req.Amount, Message: fmt.Sprintf("billing failed: %v", err)}
	}
	return resp
}
