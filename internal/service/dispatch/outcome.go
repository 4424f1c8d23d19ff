package dispatch

// OutcomeStatus classifies the result of dispatching one intent.
type OutcomeStatus string

// List of dispatch outcome statuses
const (
	StatusSent         OutcomeStatus = "sent"
	StatusDuplicate    OutcomeStatus = "duplicate"
	StatusNoRecipients OutcomeStatus = "no_recipients"
	StatusFailed       OutcomeStatus = "failed"
)

// Outcome summarizes the side effects of one dispatch.
type Outcome struct {
	Status         OutcomeStatus
	PushedTokens   int
	InvalidTokens  int
	RecordsWritten int
}
