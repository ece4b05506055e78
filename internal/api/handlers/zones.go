package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
)

type ZoneHandler struct {
	zones *repository.ZoneRepository
	rules *repository.ZoneRuleRepository
}

func NewZoneHandler(zones *repository.ZoneRepository, rules *repository.ZoneRuleRepository) *ZoneHandler {
	return &ZoneHandler{zones: zones, rules: rules}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ZoneRequest struct {
	AccountID string   `json:"account_id" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	Cost      *float64 `json:"cost,omitempty"`
}

type ZoneRuleRequest struct {
	AccountID       string          `json:"account_id" binding:"required"`
	RuleType        models.RuleType `json:"rule_type" binding:"required"`
	CooldownMinutes int             `json:"cooldown_minutes"`
}

// CreateZone registers a zone
// @Summary Register a zone
// @Tags zones
// @Accept json
// @Produce json
// @Param request body ZoneRequest true "Zone definition"
// @Success 201 {object} models.Zone
// @Failure 400 {object} ErrorResponse
// @Router /zones [post]
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var req ZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	zone, err := h.zones.Create(c.Request.Context(), req.AccountID, req.Name, req.Cost)
	if err != nil {
		log.Error().Err(err).Str("account_id", req.AccountID).Msg("Failed to create zone")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info().Str("zone_id", zone.ID).Str("account_id", zone.AccountID).Msg("Zone created")
	c.JSON(http.StatusCreated, zone)
}

// DeleteZone removes a zone
// @Summary Delete a zone
// @Tags zones
// @Produce json
// @Param zone_id path string true "Zone ID"
// @Param account_id query string true "Owning account"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /zones/{zone_id} [delete]
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	zoneID := c.Param("zone_id")
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	if err := h.zones.Delete(c.Request.Context(), accountID, zoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
			return
		}
		log.Error().Err(err).Str("zone_id", zoneID).Msg("Failed to delete zone")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete zone"})
		return
	}

	log.Info().Str("zone_id", zoneID).Msg("Zone deleted")
	c.JSON(http.StatusOK, gin.H{"message": "zone deleted"})
}

// UpsertRule sets the zone's alerting policy
// @Summary Set the alerting policy for a zone
// @Description Creates or replaces the zone's single rule. Cooldown is clamped to 1-1440 minutes.
// @Tags zones
// @Accept json
// @Produce json
// @Param zone_id path string true "Zone ID"
// @Param request body ZoneRuleRequest true "Rule definition"
// @Success 200 {object} models.ZoneRule
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /zones/{zone_id}/rule [put]
func (h *ZoneHandler) UpsertRule(c *gin.Context) {
	zoneID := c.Param("zone_id")

	var req ZoneRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.ownsZone(c, zoneID, req.AccountID) {
		return
	}

	rule, err := h.rules.Upsert(c.Request.Context(), zoneID, req.RuleType, req.CooldownMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Info().
		Str("zone_id", zoneID).
		Str("rule_type", rule.RuleType.String()).
		Int("cooldown_minutes", rule.CooldownMinutes).
		Msg("Zone rule updated")
	c.JSON(http.StatusOK, rule)
}

// GetRule returns the zone's alerting policy
// @Summary Get the alerting policy for a zone
// @Tags zones
// @Produce json
// @Param zone_id path string true "Zone ID"
// @Success 200 {object} models.ZoneRule
// @Failure 404 {object} ErrorResponse
// @Router /zones/{zone_id}/rule [get]
func (h *ZoneHandler) GetRule(c *gin.Context) {
	zoneID := c.Param("zone_id")

	rule, err := h.rules.Get(c.Request.Context(), zoneID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone has no rule"})
			return
		}
		log.Error().Err(err).Str("zone_id", zoneID).Msg("Failed to get zone rule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get zone rule"})
		return
	}

	c.JSON(http.StatusOK, rule)
}

// DeleteRule removes the zone's alerting policy
// @Summary Delete the alerting policy for a zone
// @Description Restores the permissive default: allow everything, no per-zone cooldown.
// @Tags zones
// @Produce json
// @Param zone_id path string true "Zone ID"
// @Param account_id query string true "Owning account"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /zones/{zone_id}/rule [delete]
func (h *ZoneHandler) DeleteRule(c *gin.Context) {
	zoneID := c.Param("zone_id")
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	if !h.ownsZone(c, zoneID, accountID) {
		return
	}

	if err := h.rules.Delete(c.Request.Context(), zoneID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone has no rule"})
			return
		}
		log.Error().Err(err).Str("zone_id", zoneID).Msg("Failed to delete zone rule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete zone rule"})
		return
	}

	log.Info().Str("zone_id", zoneID).Msg("Zone rule deleted")
	c.JSON(http.StatusOK, gin.H{"message": "zone rule deleted"})
}

// ownsZone rejects rule writes against zones the caller does not own.
// Writes a response and returns false on rejection.
func (h *ZoneHandler) ownsZone(c *gin.Context, zoneID, accountID string) bool {
	zone, err := h.zones.Get(c.Request.Context(), zoneID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
			return false
		}
		log.Error().Err(err).Str("zone_id", zoneID).Msg("Zone ownership check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "zone lookup failed"})
		return false
	}
	if zone.AccountID != accountID {
		c.JSON(http.StatusForbidden, gin.H{"error": "zone not owned by account"})
		return false
	}
	return true
}
