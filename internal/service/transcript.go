package service

import (
	"fmt"
	"strings"

	"bot-detect/internal/domain"
)

// FormatConversation convierte la secuencia ordenada de mensajes de un
// diálogo en una transcripción de texto plano, una línea por turno:
//
//	"0: Hello\n1: Hi!"
//
// Función pura: mismo input, misma salida byte a byte. No recorta, no
// deduplica ni trunca.
func FormatConversation(messages []domain.Message) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("%d: %s", m.ParticipantIndex, m.Text))
	}
	return strings.Join(lines, "\n")
}
