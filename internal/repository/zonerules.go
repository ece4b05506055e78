package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sentinel-ingest-go/internal/models"
)

// ZoneRuleRepository holds the per-zone alerting policy. At most one
// rule exists per zone; Upsert replaces any previous rule so duplicate
// rule state is unreachable. Ownership checks happen a layer up, in the
// HTTP surface.
type ZoneRuleRepository struct {
	db *sql.DB
}

func NewZoneRuleRepository(db *sql.DB) *ZoneRuleRepository {
	return &ZoneRuleRepository{db: db}
}

// Get returns the zone's rule, or ErrNotFound when the zone has none.
// Absence means "allow everything, no per-zone cooldown".
func (r *ZoneRuleRepository) Get(ctx context.Context, zoneID string) (*models.ZoneRule, error) {
	query := `
		SELECT zone_id, rule_type, cooldown_minutes, updated_at
		FROM zone_rules
		WHERE zone_id = $1
	`
	var rule models.ZoneRule
	err := r.db.QueryRowContext(ctx, query, zoneID).Scan(
		&rule.ZoneID,
		&rule.RuleType,
		&rule.CooldownMinutes,
		&rule.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get zone rule: %w", err)
	}
	return &rule, nil
}

// Upsert validates the rule type, clamps the cooldown into [1, 1440]
// minutes, and writes the zone's single rule. A second write for the
// same zone replaces the first.
func (r *ZoneRuleRepository) Upsert(ctx context.Context, zoneID string, ruleType models.RuleType, cooldownMinutes int) (*models.ZoneRule, error) {
	if !ruleType.IsValid() {
		return nil, fmt.Errorf("invalid rule type: %s", ruleType)
	}

	rule := &models.ZoneRule{
		ZoneID:          zoneID,
		RuleType:        ruleType,
		CooldownMinutes: models.ClampCooldownMinutes(cooldownMinutes),
		UpdatedAt:       time.Now().UTC(),
	}

	query := `
		INSERT INTO zone_rules (zone_id, rule_type, cooldown_minutes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (zone_id) DO UPDATE SET
			rule_type = EXCLUDED.rule_type,
			cooldown_minutes = EXCLUDED.cooldown_minutes,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query, rule.ZoneID, rule.RuleType, rule.CooldownMinutes, rule.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert zone rule: %w", err)
	}
	return rule, nil
}

// Delete removes the zone's rule, restoring the permissive default
func (r *ZoneRuleRepository) Delete(ctx context.Context, zoneID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM zone_rules WHERE zone_id = $1`, zoneID)
	if err != nil {
		return fmt.Errorf("failed to delete zone rule: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
