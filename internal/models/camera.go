package models

import (
	"time"
)

// Camera represents a registered snapshot source. A camera is bound to
// one account and optionally to one zone. Its API key is generated once
// at registration and is the credential presented on ingestion calls.
type Camera struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	ZoneID    *string   `json:"zone_id,omitempty"`
	Name      string    `json:"name"`
	APIKey    string    `json:"-"` // never serialized after creation
	CreatedAt time.Time `json:"created_at"`
}

// CameraRequest is the payload for registering a camera
type CameraRequest struct {
	AccountID string  `json:"account_id" binding:"required"`
	ZoneID    *string `json:"zone_id,omitempty"`
	Name      string  `json:"name" binding:"required"`
}

// CameraResponse is returned on registration. It is the only place the
// API key is ever shown.
type CameraResponse struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	ZoneID    *string   `json:"zone_id,omitempty"`
	Name      string    `json:"name"`
	APIKey    string    `json:"api_key"`
	CreatedAt time.Time `json:"created_at"`
}
