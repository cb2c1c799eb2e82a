package run

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/infrastructure/metrics"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

// Message roles as reported by the provider and stored in the record store.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// emptyToolOutput acknowledges a tool call without executing it. Tool calls
// are not executed in this service; every pending call is unblocked with an
// empty result so the run can finish.
const emptyToolOutput = "[]"

// ToolCall is a pending tool invocation reported by a requires_action run.
type ToolCall struct {
	ID string
}

// ToolOutput acknowledges a single tool call.
type ToolOutput struct {
	CallID string
	Output string
}

// Run is the transient state of one assistant-processing pass over a thread.
type Run struct {
	ID               string
	Status           Status
	PendingToolCalls []ToolCall
	FailureDetail    string
}

// ContentBlock is one typed content fragment of a thread message.
type ContentBlock struct {
	Type string
	Text string
}

// ThreadMessage is a message stored on the provider-owned thread.
type ThreadMessage struct {
	Role    string
	Content []ContentBlock
}

// TextContent returns the first text block of the message.
func (m ThreadMessage) TextContent() (string, bool) {
	for _, block := range m.Content {
		if block.Type == "text" {
			return block.Text, true
		}
	}
	return "", false
}

// Provider is the hosted assistant service consumed by the orchestrator.
// ListMessages must return messages newest-first.
type Provider interface {
	AddUserMessage(ctx context.Context, threadID, text string) error
	CreateRun(ctx context.Context, threadID, assistantID string) (*Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (*Run, error)
	SubmitToolOutputs(ctx context.Context, threadID, runID string, outputs []ToolOutput) error
	ListMessages(ctx context.Context, threadID string) ([]ThreadMessage, error)
}

// MessageRecorder persists chat messages to the record store.
type MessageRecorder interface {
	CreateMessage(ctx context.Context, conversationID, role, content string) (string, error)
}

// TurnParams identifies one user turn against an existing thread.
type TurnParams struct {
	ThreadID       string
	AssistantID    string
	ConversationID string
	UserText       string
}

// TurnResult carries the assistant reply and the ids of the persisted records.
type TurnResult struct {
	Reply              string
	UserMessageID      string
	AssistantMessageID string
}

// Orchestrator submits a user message, drives the resulting run to a terminal
// state and persists the exchanged pair of messages.
type Orchestrator struct {
	provider     Provider
	records      MessageRecorder
	pollInterval time.Duration
	maxAttempts  int
	log          zerolog.Logger
}

// NewOrchestrator wires the orchestrator with its collaborators.
func NewOrchestrator(provider Provider, records MessageRecorder, pollInterval time.Duration, maxAttempts int, log zerolog.Logger) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 30
	}
	return &Orchestrator{
		provider:     provider,
		records:      records,
		pollInterval: pollInterval,
		maxAttempts:  maxAttempts,
		log:          log.With().Str("component", "run-orchestrator").Logger(),
	}
}

// RunTurn executes one complete user turn. On success exactly two records are
// persisted (user message, then assistant reply) sharing the conversation id;
// on any failure no records are written.
func (o *Orchestrator) RunTurn(ctx context.Context, params TurnParams) (*TurnResult, error) {
	if strings.TrimSpace(params.UserText) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message text is required", nil, "run-turn-empty-message")
	}
	if strings.TrimSpace(params.ThreadID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"thread id is required", nil, "run-turn-empty-thread")
	}
	if strings.TrimSpace(params.AssistantID) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotConfigured,
			"no hosted assistant configured, save the configuration first", nil, "run-turn-no-assistant")
	}

	// The user message must be on the thread before the run starts.
	if err := o.provider.AddUserMessage(ctx, params.ThreadID, params.UserText); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"append user message to thread", err, "run-turn-add-message")
	}

	created, err := o.provider.CreateRun(ctx, params.ThreadID, params.AssistantID)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"start assistant run", err, "run-turn-create-run")
	}

	current, err := o.pollUntilTerminal(ctx, params.ThreadID, created.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case current.Status == StatusCompleted:
	case current.Status == StatusFailed:
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRunFailed,
			failureMessage(current), nil, "run-turn-run-failed")
	default:
		// expired, cancelled or incomplete
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRunFailed,
			"assistant run ended without completing: "+current.Status.String(), nil, "run-turn-run-aborted")
	}

	reply, err := o.extractReply(ctx, params.ThreadID)
	if err != nil {
		return nil, err
	}

	userMsgID, err := o.records.CreateMessage(ctx, params.ConversationID, RoleUser, params.UserText)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRecordStore,
			"persist user message", err, "run-turn-store-user")
	}

	assistantMsgID, err := o.records.CreateMessage(ctx, params.ConversationID, RoleAssistant, reply)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRecordStore,
			"persist assistant message", err, "run-turn-store-assistant")
	}

	return &TurnResult{
		Reply:              reply,
		UserMessageID:      userMsgID,
		AssistantMessageID: assistantMsgID,
	}, nil
}

// pollUntilTerminal polls the run at a fixed cadence up to the attempt
// ceiling. A requires_action observation acknowledges every pending tool call
// with an empty output and counts as a regular poll.
func (o *Orchestrator) pollUntilTerminal(ctx context.Context, threadID, runID string) (*Run, error) {
	var current *Run

	for attempt := 1; attempt <= o.maxAttempts; attempt++ {
		var err error
		current, err = o.provider.RetrieveRun(ctx, threadID, runID)
		if err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
				"poll run status", err, "run-turn-poll")
		}
		metrics.RunPollsTotal.WithLabelValues(current.Status.String()).Inc()

		if current.Status.NeedsToolOutputs() && len(current.PendingToolCalls) > 0 {
			if err := o.acknowledgeToolCalls(ctx, threadID, runID, current.PendingToolCalls); err != nil {
				return nil, err
			}
		}

		if current.Status.IsTerminal() {
			return current, nil
		}

		if attempt < o.maxAttempts {
			if err := sleepContext(ctx, o.pollInterval); err != nil {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
					"turn cancelled", err, "run-turn-cancelled")
			}
		}
	}

	o.log.Warn().
		Str("run_id", runID).
		Int("attempts", o.maxAttempts).
		Str("last_status", current.Status.String()).
		Msg("run did not reach a terminal state in time")

	return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeRunTimeout,
		"assistant did not complete processing in the expected time", nil, "run-turn-timeout")
}

func (o *Orchestrator) acknowledgeToolCalls(ctx context.Context, threadID, runID string, calls []ToolCall) error {
	outputs := make([]ToolOutput, 0, len(calls))
	for _, call := range calls {
		outputs = append(outputs, ToolOutput{CallID: call.ID, Output: emptyToolOutput})
	}

	if err := o.provider.SubmitToolOutputs(ctx, threadID, runID, outputs); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"submit tool outputs", err, "run-turn-tool-outputs")
	}

	metrics.ToolAcksTotal.Add(float64(len(outputs)))
	o.log.Debug().Str("run_id", runID).Int("tool_calls", len(outputs)).Msg("acknowledged pending tool calls")
	return nil
}

// extractReply reads the single most recent thread message and requires it to
// be an assistant message with a text block.
func (o *Orchestrator) extractReply(ctx context.Context, threadID string) (string, error) {
	messages, err := o.provider.ListMessages(ctx, threadID)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal,
			"list thread messages", err, "run-turn-list-messages")
	}

	if len(messages) == 0 || messages[0].Role != RoleAssistant {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoReply,
			"no assistant reply received", nil, "run-turn-no-reply")
	}

	text, ok := messages[0].TextContent()
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNoReply,
			"assistant reply has no text content", nil, "run-turn-no-text")
	}
	return text, nil
}

func failureMessage(r *Run) string {
	if strings.TrimSpace(r.FailureDetail) != "" {
		return "assistant run failed: " + r.FailureDetail
	}
	return "assistant run failed"
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
