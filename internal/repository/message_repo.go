package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"bot-detect/internal/domain"
)

// ErrDuplicateID indica que ya existe un mensaje con el mismo id.
var ErrDuplicateID = errors.New("message id already exists")

// MessageRepository define el contrato de persistencia para mensajes.
type MessageRepository interface {
	Create(ctx context.Context, message domain.Message) error
	ListByDialogID(ctx context.Context, dialogID uuid.UUID) ([]domain.Message, error)
}

// PgMessageRepository implementa MessageRepository usando pgxpool.
type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

const pgUniqueViolation = "23505"

func (r *PgMessageRepository) Create(ctx context.Context, message domain.Message) error {
	const query = `
		INSERT INTO messages (id, dialog_id, participant_index, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.DialogID,
		message.ParticipantIndex,
		message.Text,
		message.CreatedAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateID
	}
	return err
}

func (r *PgMessageRepository) ListByDialogID(ctx context.Context, dialogID uuid.UUID) ([]domain.Message, error) {
	const query = `
		SELECT id, dialog_id, participant_index, text, created_at
		FROM messages
		WHERE dialog_id = $1
		ORDER BY seq ASC
	`

	rows, err := r.pool.Query(ctx, query, dialogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		err = rows.Scan(
			&msg.ID,
			&msg.DialogID,
			&msg.ParticipantIndex,
			&msg.Text,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
