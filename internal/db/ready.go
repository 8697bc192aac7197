package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger abstrae el chequeo liviano de conectividad contra el storage.
// *pgxpool.Pool lo implementa directamente.
type Pinger interface {
	Ping(ctx context.Context) error
}

// GateState es el estado del gate de arranque.
type GateState string

const (
	GateWaiting GateState = "waiting"
	GateReady   GateState = "ready"
)

const defaultReadyInterval = 2 * time.Second

// ReadinessGate bloquea el arranque del servicio hasta que la base de datos
// acepte conexiones. Reintenta con intervalo fijo, acotado por maxAttempts
// (0 = sin límite) y cancelable por contexto. En el primer ping exitoso
// ejecuta la inicialización de esquema exactamente una vez y pasa a Ready;
// nunca vuelve a Waiting.
type ReadinessGate struct {
	logger      *zap.Logger
	pinger      Pinger
	initFn      func(ctx context.Context) error
	interval    time.Duration
	maxAttempts int

	mu       sync.Mutex
	state    GateState
	initOnce sync.Once
	initErr  error
}

func NewReadinessGate(logger *zap.Logger, pinger Pinger, initFn func(ctx context.Context) error, interval time.Duration, maxAttempts int) *ReadinessGate {
	if interval <= 0 {
		interval = defaultReadyInterval
	}
	return &ReadinessGate{
		logger:      logger,
		pinger:      pinger,
		initFn:      initFn,
		interval:    interval,
		maxAttempts: maxAttempts,
		state:       GateWaiting,
	}
}

// State devuelve el estado actual del gate.
func (g *ReadinessGate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *ReadinessGate) setReady() {
	g.mu.Lock()
	g.state = GateReady
	g.mu.Unlock()
}

// Wait bloquea hasta que el storage responda un ping, agotando los intentos
// configurados o la cancelación del contexto, lo que ocurra primero.
func (g *ReadinessGate) Wait(ctx context.Context) error {
	if g.State() == GateReady {
		return nil
	}

	attempt := 0
	for {
		attempt++
		err := g.pinger.Ping(ctx)
		if err == nil {
			if g.initFn != nil {
				g.initOnce.Do(func() {
					g.initErr = g.initFn(ctx)
				})
				if g.initErr != nil {
					return g.initErr
				}
			}
			g.setReady()
			if g.logger != nil {
				g.logger.Info("database ready", zap.Int("attempts", attempt))
			}
			return nil
		}

		if g.logger != nil {
			g.logger.Warn("waiting for database to become available",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}
		if g.maxAttempts > 0 && attempt >= g.maxAttempts {
			return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.interval):
		}
	}
}
