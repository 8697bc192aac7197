package domain

import "github.com/google/uuid"

// Prediction es el veredicto calculado para una solicitud de ingestión.
// No se persiste: se construye por request y se devuelve una sola vez.
type Prediction struct {
	ID               uuid.UUID `json:"id"`
	MessageID        uuid.UUID `json:"message_id"`
	DialogID         uuid.UUID `json:"dialog_id"`
	ParticipantIndex int       `json:"participant_index"`
	IsBotProbability float64   `json:"is_bot_probability"`
}
