package journal

import (
	"context"

	"stakeScope/internal/model"
)

// Sink records terminal transaction outcomes.
type Sink interface {
	Append(ctx context.Context, outcome model.Outcome) error
}
