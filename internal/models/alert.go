package models

import (
	"time"
)

// Classification is the outcome of the face match for one snapshot
type Classification string

const (
	ClassificationKnown   Classification = "known"
	ClassificationUnknown Classification = "unknown"
)

// String returns the string representation of Classification
func (c Classification) String() string {
	return string(c)
}

// IsValid checks if the classification is a supported value
func (c Classification) IsValid() bool {
	return c == ClassificationKnown || c == ClassificationUnknown
}

// Alert is one ledger entry for an accepted event. Once inserted it is
// immutable except for the Protected flag. Deleting an alert always
// removes the backing blob before the row.
type Alert struct {
	ID             string         `json:"id"`
	AccountID      string         `json:"account_id"`
	Classification Classification `json:"classification"`
	ObjectKey      *string        `json:"object_key,omitempty"`
	Channel        string         `json:"channel"`
	Cost           float64        `json:"cost"`
	ZoneID         *string        `json:"zone_id,omitempty"`
	CameraID       *string        `json:"camera_id,omitempty"`
	Protected      bool           `json:"protected"`
	CreatedAt      time.Time      `json:"created_at"`
}

// IngestStatus tags the variant of an IngestResult
type IngestStatus string

const (
	IngestAccepted IngestStatus = "accepted"
	IngestSkipped  IngestStatus = "skipped"
	IngestFailed   IngestStatus = "failed"
)

// SkipReason says which gate dropped a skipped event
type SkipReason string

const (
	SkipReasonCooldown SkipReason = "cooldown"
	SkipReasonPolicy   SkipReason = "policy"
)

// IngestResult is the tagged outcome of one ingestion call. Exactly
// four shapes are reachable: accepted (AlertID, Classification, Cost
// set), skipped/cooldown, skipped/policy, and failed (Cause set).
// Internal dependency identity is never exposed here.
type IngestResult struct {
	Status         IngestStatus   `json:"status"`
	AlertID        string         `json:"alert_id,omitempty"`
	Classification Classification `json:"classification,omitempty"`
	Cost           float64        `json:"cost,omitempty"`
	Reason         SkipReason     `json:"reason,omitempty"`
	Cause          string         `json:"cause,omitempty"`
}

// Accepted builds the accepted variant
func Accepted(alertID string, classification Classification, cost float64) IngestResult {
	return IngestResult{
		Status:         IngestAccepted,
		AlertID:        alertID,
		Classification: classification,
		Cost:           cost,
	}
}

// Skipped builds the skipped variant with the given reason
func Skipped(reason SkipReason) IngestResult {
	return IngestResult{Status: IngestSkipped, Reason: reason}
}

// Failed builds the failed variant. Cause is a caller-safe summary,
// not the underlying dependency error.
func Failed(cause string) IngestResult {
	return IngestResult{Status: IngestFailed, Cause: cause}
}

// AlertEvent is the payload published on the event bus for every
// accepted alert
type AlertEvent struct {
	AlertID        string         `json:"alert_id"`
	AccountID      string         `json:"account_id"`
	Classification Classification `json:"classification"`
	ZoneID         *string        `json:"zone_id,omitempty"`
	CameraID       *string        `json:"camera_id,omitempty"`
	Cost           float64        `json:"cost"`
	CreatedAt      time.Time      `json:"created_at"`
}
