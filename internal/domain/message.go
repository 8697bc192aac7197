package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message es un turno individual de un diálogo. Se crea una sola vez al
// ingresar y nunca se modifica ni se borra.
type Message struct {
	ID               uuid.UUID `json:"id"`
	DialogID         uuid.UUID `json:"dialog_id"`
	ParticipantIndex int       `json:"participant_index"`
	Text             string    `json:"text"`
	CreatedAt        time.Time `json:"created_at"`
}
