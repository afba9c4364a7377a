package model

// Outcome statuses. "unknown" means the confirmation wait ended without
// a verdict (timeout, interruption, or a failing poll): the transaction
// may still land, so it must never be read as a failure.
const (
	OutcomeConfirmed = "confirmed"
	OutcomeFailed    = "failed"
	OutcomeUnknown   = "unknown"
)

// Outcome records the terminal result of one submitted operation. It
// drives journaling and user notification only; view state changes come
// exclusively from reconciliation reads.
type Outcome struct {
	Operation   string  `json:"operation"`
	Amount      float64 `json:"amount"`
	Signature   string  `json:"signature,omitempty"`
	Status      string  `json:"status"`
	Reason      string  `json:"reason,omitempty"`
	SubmittedAt string  `json:"submitted_at,omitempty"`
	ResolvedAt  string  `json:"resolved_at"`
}
