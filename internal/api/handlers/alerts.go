package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
	"sentinel-ingest-go/internal/services/objectstore"
)

type AlertHandler struct {
	cfg    *config.Config
	alerts *repository.AlertRepository
	store  objectstore.Store
}

func NewAlertHandler(cfg *config.Config, alerts *repository.AlertRepository, store objectstore.Store) *AlertHandler {
	return &AlertHandler{cfg: cfg, alerts: alerts, store: store}
}

// ListAlerts returns an account's alerts, newest first
// @Summary List alerts for an account
// @Tags alerts
// @Produce json
// @Param account_id query string true "Account ID"
// @Param classification query string false "Filter by classification (known or unknown)"
// @Param limit query int false "Maximum rows to return"
// @Success 200 {array} models.Alert
// @Failure 400 {object} ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	var classification *models.Classification
	if raw := c.Query("classification"); raw != "" {
		cl := models.Classification(raw)
		if cl != models.ClassificationKnown && cl != models.ClassificationUnknown {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid classification"})
			return
		}
		classification = &cl
	}

	limit := h.cfg.ListingMaxPage
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	alerts, err := h.alerts.List(c.Request.Context(), accountID, classification, limit)
	if err != nil {
		log.Error().Err(err).Str("account_id", accountID).Msg("Failed to list alerts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// GetAlert returns a single alert record
// @Summary Get an alert
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} models.Alert
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{alert_id} [get]
func (h *AlertHandler) GetAlert(c *gin.Context) {
	alert, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, alert)
}

// GetAlertImage streams the alert's stored snapshot
// @Summary Download the snapshot attached to an alert
// @Tags alerts
// @Produce image/jpeg
// @Param alert_id path string true "Alert ID"
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{alert_id}/image [get]
func (h *AlertHandler) GetAlertImage(c *gin.Context) {
	alert, ok := h.lookup(c)
	if !ok {
		return
	}
	if alert.ObjectKey == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "alert has no stored snapshot"})
		return
	}

	reader, contentType, err := h.store.Get(c.Request.Context(), *alert.ObjectKey)
	if err != nil {
		log.Error().Err(err).Str("alert_id", alert.ID).Str("object_key", *alert.ObjectKey).Msg("Failed to read snapshot")
		c.JSON(http.StatusNotFound, gin.H{"error": "snapshot not available"})
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		log.Warn().Err(err).Str("alert_id", alert.ID).Msg("Snapshot stream interrupted")
	}
}

// ProtectAlert pins an alert so retention never evicts it
// @Summary Protect an alert from retention eviction
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{alert_id}/protect [post]
func (h *AlertHandler) ProtectAlert(c *gin.Context) {
	h.setProtected(c, true)
}

// UnprotectAlert makes an alert eligible for retention again
// @Summary Remove retention protection from an alert
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{alert_id}/protect [delete]
func (h *AlertHandler) UnprotectAlert(c *gin.Context) {
	h.setProtected(c, false)
}

// DeleteAlert removes an alert and its snapshot
// @Summary Delete an alert
// @Description Deletes the stored snapshot first, then the record. Works on
// protected alerts too; protection only guards against automatic eviction.
// @Tags alerts
// @Produce json
// @Param alert_id path string true "Alert ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /alerts/{alert_id} [delete]
func (h *AlertHandler) DeleteAlert(c *gin.Context) {
	alert, ok := h.lookup(c)
	if !ok {
		return
	}

	// Blob first. A record without a blob is recoverable noise, a blob
	// without a record is unaccounted storage.
	if alert.ObjectKey != nil {
		if err := h.store.Delete(c.Request.Context(), *alert.ObjectKey); err != nil {
			log.Error().Err(err).Str("alert_id", alert.ID).Str("object_key", *alert.ObjectKey).Msg("Failed to delete snapshot")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete snapshot"})
			return
		}
	}

	if err := h.alerts.Delete(c.Request.Context(), alert.ID); err != nil {
		log.Error().Err(err).Str("alert_id", alert.ID).Msg("Failed to delete alert record")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete alert"})
		return
	}

	log.Info().Str("alert_id", alert.ID).Msg("Alert deleted")
	c.JSON(http.StatusOK, gin.H{"message": "alert deleted"})
}

func (h *AlertHandler) setProtected(c *gin.Context, protected bool) {
	alert, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := h.alerts.SetProtected(c.Request.Context(), alert.ID, protected); err != nil {
		log.Error().Err(err).Str("alert_id", alert.ID).Msg("Failed to update alert protection")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update protection"})
		return
	}

	log.Info().Str("alert_id", alert.ID).Bool("protected", protected).Msg("Alert protection updated")
	c.JSON(http.StatusOK, gin.H{"message": "protection updated"})
}

func (h *AlertHandler) lookup(c *gin.Context) (*models.Alert, bool) {
	alertID := c.Param("alert_id")
	alert, err := h.alerts.Get(c.Request.Context(), alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
			return nil, false
		}
		log.Error().Err(err).Str("alert_id", alertID).Msg("Failed to load alert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load alert"})
		return nil, false
	}
	return alert, true
}
