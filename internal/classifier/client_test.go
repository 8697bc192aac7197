package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"go.uber.org/zap"
)

func TestResultScore(t *testing.T) {
	r := Result{Labels: []string{"human", "bot"}, Scores: []float64{0.7, 0.3}}

	score, ok := r.Score("bot")
	if !ok || score != 0.3 {
		t.Fatalf("expected bot score 0.3, got %f ok=%v", score, ok)
	}
	if _, ok := r.Score("alien"); ok {
		t.Fatalf("expected missing label to report not found")
	}
}

func TestZeroShotClientClassify(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.HasPrefix(r.URL.Path, "/models/") {
			t.Errorf("expected /models/ path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}

		var req inferenceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if !req.Options.WaitForModel {
			t.Errorf("expected wait_for_model option")
		}

		json.NewEncoder(w).Encode(inferenceResponse{
			Sequence: req.Inputs,
			Labels:   []string{"human", "bot"},
			Scores:   []float64{0.4, 0.6},
		})
	}))
	defer server.Close()

	c := NewZeroShotClient(server.URL, "test-key", "some/model", zap.NewNop())

	result, err := c.Classify(context.Background(), "0: hola", []string{"bot", "human"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if score, ok := result.Score("bot"); !ok || score != 0.6 {
		t.Fatalf("expected bot score 0.6, got %f ok=%v", score, ok)
	}

	// Primera llamada: warmup + classify. Las siguientes reusan el warmup.
	if got := atomic.LoadInt64(&hits); got != 2 {
		t.Fatalf("expected 2 requests after first classify, got %d", got)
	}
	if _, err := c.Classify(context.Background(), "1: hola", []string{"bot", "human"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := atomic.LoadInt64(&hits); got != 3 {
		t.Fatalf("expected warmup to run once, got %d total requests", got)
	}
}

func TestZeroShotClientClassify_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"model too busy"}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewZeroShotClient(server.URL, "k", "m", zap.NewNop())
	if err := c.Warmup(context.Background()); err == nil {
		t.Fatalf("expected warmup error on 503")
	}

	// El fallo de warmup queda fijado: toda clasificación posterior falla.
	if _, err := c.Classify(context.Background(), "x", []string{"bot"}); err == nil {
		t.Fatalf("expected classify to repeat the warmup failure")
	}
}

func TestZeroShotClientClassify_APIErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"error": "Model some/model is currently loading"})
	}))
	defer server.Close()

	c := NewZeroShotClient(server.URL, "k", "some/model", zap.NewNop())
	if _, err := c.classify(context.Background(), "x", []string{"bot"}); err == nil || !strings.Contains(err.Error(), "currently loading") {
		t.Fatalf("expected api error surfaced, got %v", err)
	}
}

func TestZeroShotClientClassify_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(inferenceResponse{
			Labels: []string{"bot", "human"},
			Scores: []float64{1.0},
		})
	}))
	defer server.Close()

	c := NewZeroShotClient(server.URL, "k", "m", zap.NewNop())
	if _, err := c.classify(context.Background(), "x", []string{"bot", "human"}); err == nil {
		t.Fatalf("expected error on mismatched labels/scores")
	}
}
