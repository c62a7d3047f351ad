package service

// Auth operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// AuthMetrics records the result of authentication operations.
type AuthMetrics interface {
	RecordAuthOperation(operation, outcome string)
}
