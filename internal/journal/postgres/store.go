package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"stakeScope/internal/model"
)

// Store persists transaction outcomes to Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Append upserts one outcome keyed by signature. Ones without a signature
// (submission never succeeded) insert a fresh row.
func (s *Store) Append(ctx context.Context, outcome model.Outcome) error {
	if outcome.Signature == "" {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO tx_outcomes (
				operation, amount, signature, status, reason, submitted_at, resolved_at, created_at
			) VALUES ($1, $2, NULL, $3, $4, $5, $6, now())
		`,
			outcome.Operation,
			outcome.Amount,
			outcome.Status,
			outcome.Reason,
			nullIfEmpty(outcome.SubmittedAt),
			outcome.ResolvedAt,
		)
		return err
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tx_outcomes (
			operation, amount, signature, status, reason, submitted_at, resolved_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (signature) DO UPDATE SET
			status = EXCLUDED.status,
			reason = EXCLUDED.reason,
			resolved_at = EXCLUDED.resolved_at
	`,
		outcome.Operation,
		outcome.Amount,
		outcome.Signature,
		outcome.Status,
		outcome.Reason,
		nullIfEmpty(outcome.SubmittedAt),
		outcome.ResolvedAt,
	)
	return err
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
