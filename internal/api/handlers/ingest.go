package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"sentinel-ingest-go/internal/config"
	"sentinel-ingest-go/internal/helpers"
	"sentinel-ingest-go/internal/logging"
	"sentinel-ingest-go/internal/models"
	"sentinel-ingest-go/internal/repository"
	"sentinel-ingest-go/internal/services/ingestion"
)

type IngestHandler struct {
	cfg      *config.Config
	pipeline *ingestion.Service
	cameras  *repository.CameraRepository
}

func NewIngestHandler(cfg *config.Config, pipeline *ingestion.Service, cameras *repository.CameraRepository) *IngestHandler {
	return &IngestHandler{
		cfg:      cfg,
		pipeline: pipeline,
		cameras:  cameras,
	}
}

// Ingest accepts a camera snapshot
// @Summary Ingest a camera snapshot
// @Description Submit a snapshot for classification, policy evaluation and recording. Authenticated via the camera's API key.
// @Tags ingest
// @Accept mpfd
// @Produce json
// @Param X-API-Key header string true "Camera API key"
// @Param image formData file true "Snapshot image (JPEG or PNG)"
// @Param channel formData string false "Notification channel"
// @Success 200 {object} models.IngestResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} models.IngestResult
// @Router /ingest [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	apiKey := c.GetHeader("X-API-Key")
	if apiKey == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing api key"})
		return
	}

	camera, err := h.cameras.GetByAPIKey(c.Request.Context(), apiKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
			return
		}
		logging.Error(c).Err(err).Msg("Camera lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "camera lookup failed"})
		return
	}
	logging.TagAccount(c, camera.AccountID)

	image, err := h.readImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cameraID := camera.ID
	result := h.pipeline.Ingest(c.Request.Context(), ingestion.Request{
		AccountID: camera.AccountID,
		ZoneID:    camera.ZoneID,
		CameraID:  &cameraID,
		Image:     image,
		Channel:   c.PostForm("channel"),
	})

	switch result.Status {
	case models.IngestFailed:
		logging.Warn(c).Str("cause", result.Cause).Msg("Snapshot rejected")
		c.JSON(http.StatusBadGateway, result)
	default:
		logging.Info(c).
			Str("status", string(result.Status)).
			Str("camera_id", cameraID).
			Msg("Snapshot processed")
		c.JSON(http.StatusOK, result)
	}
}

func (h *IngestHandler) readImage(c *gin.Context) ([]byte, error) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		return nil, errors.New("image file is required")
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxImageBytes+1))
	if err != nil {
		return nil, errors.New("failed to read image")
	}
	if int64(len(image)) > h.cfg.MaxImageBytes {
		return nil, errors.New("image exceeds size limit")
	}
	if helpers.SniffImageContentType(image) == "" {
		return nil, errors.New("unsupported image format")
	}
	return image, nil
}
