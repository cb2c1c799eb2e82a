// Package run drives a hosted-assistant run to a terminal state and extracts
// the assistant's reply.
package run

// Status represents the lifecycle status of a hosted assistant run.
type Status string

const (
	// Non-terminal states
	StatusQueued         Status = "queued"
	StatusInProgress     Status = "in_progress"
	StatusRequiresAction Status = "requires_action"
	StatusCancelling     Status = "cancelling"

	// Terminal states (no further transitions)
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
	StatusIncomplete Status = "incomplete"
)

// IsTerminal returns true if the status is a terminal state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed ||
		s == StatusCancelled || s == StatusExpired || s == StatusIncomplete
}

// IsActive returns true if the run is still being processed by the provider.
func (s Status) IsActive() bool {
	return s == StatusQueued || s == StatusInProgress ||
		s == StatusRequiresAction || s == StatusCancelling
}

// NeedsToolOutputs returns true if the provider is blocked on tool outputs.
func (s Status) NeedsToolOutputs() bool {
	return s == StatusRequiresAction
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}
