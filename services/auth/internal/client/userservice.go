// Package client holds the outbound call to the user service. Registration
// propagates the new identity to the profile store there; the call is a
// best-effort notification and its failure never fails registration.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type UserServiceClient struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns nil when no URL is configured; a nil client skips propagation.
func New(baseURL string) *UserServiceClient {
	if baseURL == "" {
		return nil
	}
	return &UserServiceClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

type CreateProfileRequest struct {
	AuthUserID  uint   `json:"authUserId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

func (c *UserServiceClient) CreateProfile(ctx context.Context, req CreateProfileRequest) error {
	if c == nil {
		return nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/users", bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("user service returned %d", resp.StatusCode)
	}
	return nil
}
