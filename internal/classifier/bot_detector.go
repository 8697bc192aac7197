package classifier

import (
	"context"
	"errors"
	"fmt"
)

const (
	LabelBot   = "bot"
	LabelHuman = "human"

	botPromptPrefix = "Determine if there is an AI bot in the dialog:\n\n"
)

// candidateLabels se envía siempre en este orden; el score se recupera por
// identidad de etiqueta, nunca por posición.
var candidateLabels = []string{LabelBot, LabelHuman}

// ErrBotLabelMissing indica que la salida del clasificador no incluye la
// etiqueta bot.
var ErrBotLabelMissing = errors.New("classifier response missing bot label")

// BotDetector es el adaptador de dominio sobre el clasificador zero-shot:
// compone la transcripción en el prompt de instrucción fijo, pide siempre
// las etiquetas {bot, human} y expone solo la probabilidad asignada a bot.
type BotDetector struct {
	cls Classifier
}

func NewBotDetector(cls Classifier) *BotDetector {
	return &BotDetector{cls: cls}
}

func (d *BotDetector) BotProbability(ctx context.Context, transcript string) (float64, error) {
	result, err := d.cls.Classify(ctx, botPromptPrefix+transcript, candidateLabels)
	if err != nil {
		return 0, fmt.Errorf("classify transcript: %w", err)
	}
	probability, ok := result.Score(LabelBot)
	if !ok {
		return 0, ErrBotLabelMissing
	}
	return probability, nil
}
