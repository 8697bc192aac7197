package service

import (
	"testing"

	"bot-detect/internal/domain"
)

func TestFormatConversation(t *testing.T) {
	t.Run("dialogo de dos participantes", func(t *testing.T) {
		msgs := []domain.Message{
			{ParticipantIndex: 0, Text: "Hello"},
			{ParticipantIndex: 1, Text: "Hi!"},
		}
		got := FormatConversation(msgs)
		if got != "0: Hello\n1: Hi!" {
			t.Fatalf("unexpected transcript: %q", got)
		}
	})

	t.Run("sin mensajes", func(t *testing.T) {
		if got := FormatConversation(nil); got != "" {
			t.Fatalf("expected empty transcript, got %q", got)
		}
	})

	t.Run("preserva orden y contenido textual", func(t *testing.T) {
		msgs := []domain.Message{
			{ParticipantIndex: 1, Text: "  espacios  "},
			{ParticipantIndex: 0, Text: "línea\ninterna"},
			{ParticipantIndex: 7, Text: "repetido"},
			{ParticipantIndex: 7, Text: "repetido"},
		}
		got := FormatConversation(msgs)
		want := "1:   espacios  \n0: línea\ninterna\n7: repetido\n7: repetido"
		if got != want {
			t.Fatalf("expected verbatim formatting, got %q", got)
		}
	})

	t.Run("deterministico", func(t *testing.T) {
		msgs := []domain.Message{
			{ParticipantIndex: 0, Text: "a"},
			{ParticipantIndex: 1, Text: "b"},
			{ParticipantIndex: 0, Text: "c"},
		}
		first := FormatConversation(msgs)
		for i := 0; i < 10; i++ {
			if got := FormatConversation(msgs); got != first {
				t.Fatalf("expected identical output on repeat call, got %q vs %q", got, first)
			}
		}
	})
}
