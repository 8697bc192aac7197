package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Result es la distribución de probabilidad devuelta por el clasificador:
// labels y scores son paralelos y los scores suman 1.
type Result struct {
	Labels []string
	Scores []float64
}

// Score busca el puntaje por identidad de etiqueta. El orden de salida del
// clasificador no es estable, nunca se debe indexar por posición.
func (r Result) Score(label string) (float64, bool) {
	for i, l := range r.Labels {
		if l == label && i < len(r.Scores) {
			return r.Scores[i], true
		}
	}
	return 0, false
}

// Classifier define la interfaz para clasificación zero-shot de texto.
type Classifier interface {
	Classify(ctx context.Context, text string, labels []string) (Result, error)
}

// ZeroShotClient implementa Classifier contra una API de inferencia
// estilo HuggingFace. El modelo remoto se carga una sola vez por proceso
// mediante Warmup; las llamadas posteriores comparten el cliente ya
// calentado y son seguras de invocar concurrentemente.
type ZeroShotClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *zap.Logger

	warmOnce sync.Once
	warmErr  error
}

// NewZeroShotClient construye un cliente apuntando al endpoint de inferencia.
func NewZeroShotClient(baseURL, apiKey, model string, logger *zap.Logger) *ZeroShotClient {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co"
	}
	return &ZeroShotClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  logger,
	}
}

// Warmup dispara la carga del modelo remoto. Corre una sola vez aunque se
// llame desde varias goroutines; un fallo queda fijado y se repite a los
// llamadores, que deben tratarlo como fatal.
func (c *ZeroShotClient) Warmup(ctx context.Context) error {
	c.warmOnce.Do(func() {
		if c.logger != nil {
			c.logger.Info("loading zero-shot classification model", zap.String("model", c.model))
		}
		_, c.warmErr = c.classify(ctx, "ping", []string{"ok"})
	})
	return c.warmErr
}

func (c *ZeroShotClient) Classify(ctx context.Context, text string, labels []string) (Result, error) {
	if err := c.Warmup(ctx); err != nil {
		return Result{}, fmt.Errorf("classifier warmup: %w", err)
	}
	return c.classify(ctx, text, labels)
}

func (c *ZeroShotClient) classify(ctx context.Context, text string, labels []string) (Result, error) {
	reqBody := inferenceRequest{
		Inputs: text,
		Parameters: inferenceParameters{
			CandidateLabels: labels,
		},
		Options: inferenceOptions{
			WaitForModel: true,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.baseURL + "/models/" + url.PathEscape(c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Warn("classifier error response",
				zap.Int("status", resp.StatusCode),
				zap.ByteString("body", respBody),
			)
		}
		return Result{}, fmt.Errorf("classifier http error: status=%d", resp.StatusCode)
	}

	var ir inferenceResponse
	if err := json.Unmarshal(respBody, &ir); err != nil {
		return Result{}, fmt.Errorf("unmarshal response: %w", err)
	}

	if ir.Error != "" {
		return Result{}, fmt.Errorf("classifier api error: %s", ir.Error)
	}

	if len(ir.Labels) == 0 || len(ir.Labels) != len(ir.Scores) {
		return Result{}, fmt.Errorf("classifier malformed response: %d labels, %d scores", len(ir.Labels), len(ir.Scores))
	}

	return Result{Labels: ir.Labels, Scores: ir.Scores}, nil
}

type inferenceRequest struct {
	Inputs     string              `json:"inputs"`
	Parameters inferenceParameters `json:"parameters"`
	Options    inferenceOptions    `json:"options"`
}

type inferenceParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type inferenceResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
	Error    string    `json:"error,omitempty"`
}
