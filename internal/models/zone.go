package models

import (
	"time"
)

// RuleType represents the alert-type filter applied to a zone
type RuleType string

const (
	RuleTypeKnownOnly   RuleType = "known_only"
	RuleTypeUnknownOnly RuleType = "unknown_only"
	RuleTypeMixed       RuleType = "mixed"
)

// String returns the string representation of RuleType
func (rt RuleType) String() string {
	return string(rt)
}

// IsValid checks if the rule type is one of the supported values
func (rt RuleType) IsValid() bool {
	switch rt {
	case RuleTypeKnownOnly, RuleTypeUnknownOnly, RuleTypeMixed:
		return true
	default:
		return false
	}
}

// Cooldown bounds in minutes
const (
	MinCooldownMinutes = 1
	MaxCooldownMinutes = 1440
)

// ClampCooldownMinutes clamps a cooldown interval into [1, 1440]
func ClampCooldownMinutes(minutes int) int {
	if minutes < MinCooldownMinutes {
		return MinCooldownMinutes
	}
	if minutes > MaxCooldownMinutes {
		return MaxCooldownMinutes
	}
	return minutes
}

// Zone represents a sub-area of a property with its own alerting policy
// and per-event cost. A zone belongs to exactly one location, which
// belongs to one account; the account id is denormalized here so
// retention and listing queries stay single-hop.
type Zone struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	Cost      *float64  `json:"cost,omitempty"` // per-event cost; nil means use the configured default
	CreatedAt time.Time `json:"created_at"`
}

// ZoneRule is the alerting policy for a zone. At most one rule exists
// per zone (upsert semantics). Absence of a rule means "allow
// everything, no per-zone cooldown".
type ZoneRule struct {
	ZoneID          string    `json:"zone_id"`
	RuleType        RuleType  `json:"rule_type"`
	CooldownMinutes int       `json:"cooldown_minutes"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Cooldown returns the rule's cooldown as a duration
func (r *ZoneRule) Cooldown() time.Duration {
	return time.Duration(r.CooldownMinutes) * time.Minute
}

// Allows evaluates the rule filter against a classification.
// mixed allows everything; known_only requires a face match;
// unknown_only requires no match.
func (r *ZoneRule) Allows(isKnown bool) bool {
	switch r.RuleType {
	case RuleTypeKnownOnly:
		return isKnown
	case RuleTypeUnknownOnly:
		return !isKnown
	default:
		return true
	}
}
