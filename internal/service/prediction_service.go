package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bot-detect/internal/classifier"
	"bot-detect/internal/domain"
	"bot-detect/internal/repository"
)

var (
	ErrPredictionServiceNotConfigured = errors.New("prediction service not configured")
	ErrDialogNotFound                 = errors.New("no messages found for this dialog_id")
)

// PredictionService orquesta el pipeline de una solicitud: persistir el
// mensaje, reconstruir el diálogo completo, clasificarlo y armar la
// predicción. Cualquier fallo corta el pipeline; nunca se devuelve un
// resultado parcial.
type PredictionService struct {
	logger   *zap.Logger
	messages repository.MessageRepository
	detector *classifier.BotDetector
}

func NewPredictionService(logger *zap.Logger, messages repository.MessageRepository, detector *classifier.BotDetector) *PredictionService {
	return &PredictionService{
		logger:   logger,
		messages: messages,
		detector: detector,
	}
}

func (s *PredictionService) Predict(ctx context.Context, msg domain.Message) (domain.Prediction, error) {
	if s == nil || s.messages == nil || s.detector == nil {
		return domain.Prediction{}, ErrPredictionServiceNotConfigured
	}

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return domain.Prediction{}, fmt.Errorf("store message: %w", err)
	}

	history, err := s.messages.ListByDialogID(ctx, msg.DialogID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("load dialog: %w", err)
	}
	// Chequeo defensivo: con lectura sobre el mismo pool el insert recién
	// hecho siempre debería aparecer.
	if len(history) == 0 {
		return domain.Prediction{}, ErrDialogNotFound
	}

	transcript := FormatConversation(history)
	probability, err := s.detector.BotProbability(ctx, transcript)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("classify dialog: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("dialog classified",
			zap.String("dialog_id", msg.DialogID.String()),
			zap.Int("messages", len(history)),
			zap.Float64("is_bot_probability", probability),
		)
	}

	return domain.Prediction{
		ID:               uuid.New(),
		MessageID:        msg.ID,
		DialogID:         msg.DialogID,
		ParticipantIndex: msg.ParticipantIndex,
		IsBotProbability: probability,
	}, nil
}
