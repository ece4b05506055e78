package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
)

type CameraHandler struct {
	cameras *repository.CameraRepository
	zones   *repository.ZoneRepository
}

func NewCameraHandler(cameras *repository.CameraRepository, zones *repository.ZoneRepository) *CameraHandler {
	return &CameraHandler{cameras: cameras, zones: zones}
}

// RegisterCamera registers a camera and returns its one-time API key
// @Summary Register a camera
// @Description The returned api_key is shown exactly once and cannot be retrieved later.
// @Tags cameras
// @Accept json
// @Produce json
// @Param request body models.CameraRequest true "Camera definition"
// @Success 201 {object} models.CameraResponse
// @Failure 400 {object} ErrorResponse
// @Router /cameras [post]
func (h *CameraHandler) RegisterCamera(c *gin.Context) {
	var req models.CameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ZoneID != nil {
		zone, err := h.zones.Get(c.Request.Context(), *req.ZoneID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "zone not found"})
				return
			}
			log.Error().Err(err).Str("zone_id", *req.ZoneID).Msg("Zone lookup failed during camera registration")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "zone lookup failed"})
			return
		}
		if zone.AccountID != req.AccountID {
			c.JSON(http.StatusForbidden, gin.H{"error": "zone not owned by account"})
			return
		}
	}

	camera, err := h.cameras.Create(c.Request.Context(), req.AccountID, req.Name, req.ZoneID)
	if err != nil {
		log.Error().Err(err).Str("account_id", req.AccountID).Msg("Failed to register camera")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register camera"})
		return
	}

	log.Info().Str("camera_id", camera.ID).Str("account_id", camera.AccountID).Msg("Camera registered")
	c.JSON(http.StatusCreated, models.CameraResponse{
		ID:        camera.ID,
		AccountID: camera.AccountID,
		ZoneID:    camera.ZoneID,
		Name:      camera.Name,
		APIKey:    camera.APIKey,
		CreatedAt: camera.CreatedAt,
	})
}

// DeleteCamera revokes a camera and its credential
// @Summary Delete a camera
// @Tags cameras
// @Produce json
// @Param camera_id path string true "Camera ID"
// @Param account_id query string true "Owning account"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /cameras/{camera_id} [delete]
func (h *CameraHandler) DeleteCamera(c *gin.Context) {
	cameraID := c.Param("camera_id")
	accountID := c.Query("account_id")
	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id is required"})
		return
	}

	if err := h.cameras.Delete(c.Request.Context(), accountID, cameraID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "camera not found"})
			return
		}
		log.Error().Err(err).Str("camera_id", cameraID).Msg("Failed to delete camera")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete camera"})
		return
	}

	log.Info().Str("camera_id", cameraID).Msg("Camera deleted")
	c.JSON(http.StatusOK, gin.H{"message": "camera deleted"})
}
