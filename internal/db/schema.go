package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// La columna seq fija el orden de llegada de los mensajes: el orden de
// inserción físico no está garantizado por Postgres en un SELECT sin ORDER BY.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS messages (
		id UUID PRIMARY KEY,
		dialog_id UUID NOT NULL,
		participant_index INT NOT NULL,
		text TEXT NOT NULL,
		seq BIGSERIAL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_dialog_seq ON messages (dialog_id, seq)`,
}

// InitSchema crea las tablas e índices del servicio si no existen.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
