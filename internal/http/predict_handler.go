package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"bot-detect/internal/domain"
	"bot-detect/internal/repository"
	"bot-detect/internal/service"
)

// PredictHandler mantiene dependencias para el endpoint de clasificación.
type PredictHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
}

// NewPredictHandler crea una instancia de PredictHandler.
func NewPredictHandler(logger *zap.Logger, predictions *service.PredictionService) *PredictHandler {
	return &PredictHandler{
		logger:      logger,
		predictions: predictions,
	}
}

// Predict maneja POST /predict: guarda el mensaje entrante y devuelve la
// probabilidad de que un bot participe en el diálogo.
func (h *PredictHandler) Predict(c *gin.Context) {
	// ParticipantIndex es puntero: el índice 0 es válido y "required"
	// sobre un int lo rechazaría.
	var req struct {
		ID               string `json:"id" binding:"required,uuid"`
		DialogID         string `json:"dialog_id" binding:"required,uuid"`
		ParticipantIndex *int   `json:"participant_index" binding:"required"`
		Text             string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}
	dialogID, err := uuid.Parse(req.DialogID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dialog id"})
		return
	}

	msg := domain.Message{
		ID:               id,
		DialogID:         dialogID,
		ParticipantIndex: *req.ParticipantIndex,
		Text:             req.Text,
	}

	prediction, err := h.predictions.Predict(c.Request.Context(), msg)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateID):
			h.logger.Warn("duplicate message id", zap.String("message_id", req.ID))
			c.JSON(http.StatusConflict, gin.H{"error": "message id already exists"})
		case errors.Is(err, service.ErrDialogNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "no messages found for this dialog_id"})
		default:
			h.logger.Error("predict failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not classify dialog"})
		}
		return
	}

	c.JSON(http.StatusOK, prediction)
}
