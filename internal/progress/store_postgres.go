package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "verifid/pkg/domain"
	"verifid/pkg/platform/tx"
)

// PostgresStore persists registration progress in PostgreSQL. This store is
// pure I/O; stage-to-step mapping and idempotency belong to the sequencer.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed progress store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// execer lets store operations join a caller-provided transaction from the
// context.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) conn(ctx context.Context) execer {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) Save(ctx context.Context, p *RegistrationProgress) error {
	if p == nil {
		return fmt.Errorf("progress record is required")
	}
	query := `
		INSERT INTO registration_progress (user_id, step, sub_step, phase, sub_phase, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			step = EXCLUDED.step,
			sub_step = EXCLUDED.sub_step,
			phase = EXCLUDED.phase,
			sub_phase = EXCLUDED.sub_phase,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.conn(ctx).ExecContext(ctx, query,
		p.UserID.String(), p.Step, p.SubStep, p.Phase, p.SubPhase, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save registration progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, userID id.UserID) (*RegistrationProgress, error) {
	query := `
		SELECT user_id, step, sub_step, phase, sub_phase, updated_at
		FROM registration_progress
		WHERE user_id = $1
	`
	var (
		p      RegistrationProgress
		rawUID string
	)
	err := s.conn(ctx).QueryRowContext(ctx, query, userID.String()).
		Scan(&rawUID, &p.Step, &p.SubStep, &p.Phase, &p.SubPhase, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find registration progress: %w", err)
	}
	uid, err := uuid.Parse(rawUID)
	if err != nil {
		return nil, fmt.Errorf("parse stored user id: %w", err)
	}
	p.UserID = id.UserID(uid)
	return &p, nil
}
