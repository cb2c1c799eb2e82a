// Package reengagement re-contacts conversations that went quiet.
package reengagement

import (
	"context"
	"fmt"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"chatdesk/assistant-api/internal/domain/assistant"
	"chatdesk/assistant-api/internal/domain/conversation"
	"chatdesk/assistant-api/internal/domain/prompt"
	"chatdesk/assistant-api/internal/utils/platformerrors"
)

const jobTimeout = 5 * time.Minute

// IntervalUnit qualifies ReengageInterval.
type IntervalUnit string

const (
	UnitMinutes IntervalUnit = "minutes"
	UnitHours   IntervalUnit = "hours"
	UnitDays    IntervalUnit = "days"
)

// AdvancedConfig tunes response pacing and re-engagement.
type AdvancedConfig struct {
	ResponseDelay    int          `json:"ResponseDelay"`
	ReengageCount    int          `json:"ReengageCount"`
	ReengageInterval int          `json:"ReengageInterval"`
	ReengageUnit     IntervalUnit `json:"ReengageUnit"`
}

// Validate rejects configs that would never fire or fire unbounded.
func (c AdvancedConfig) Validate(ctx context.Context) error {
	if c.ReengageCount < 0 || c.ReengageInterval < 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"re-engagement count and interval must not be negative", nil, "reengage-config-negative")
	}
	switch c.ReengageUnit {
	case UnitMinutes, UnitHours, UnitDays, "":
	default:
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("unknown re-engagement unit %q", c.ReengageUnit), nil, "reengage-config-unit")
	}
	return nil
}

// Enabled reports whether the janitor has anything to do.
func (c AdvancedConfig) Enabled() bool {
	return c.ReengageCount > 0 && c.ReengageInterval > 0
}

// IdleThreshold converts the interval and unit into a duration.
func (c AdvancedConfig) IdleThreshold() time.Duration {
	switch c.ReengageUnit {
	case UnitHours:
		return time.Duration(c.ReengageInterval) * time.Hour
	case UnitDays:
		return time.Duration(c.ReengageInterval) * 24 * time.Hour
	default:
		return time.Duration(c.ReengageInterval) * time.Minute
	}
}

// Store is the record-store access used by the janitor.
type Store interface {
	// AdvancedConfig loads the pacing settings for the location.
	AdvancedConfig(ctx context.Context) (AdvancedConfig, error)
	// IdleConversations lists active conversations whose last message is
	// older than the cutoff.
	IdleConversations(ctx context.Context, cutoff time.Time) ([]conversation.Conversation, error)
	// AppendAssistantMessage stores a new assistant-authored message record.
	AppendAssistantMessage(ctx context.Context, conversationRecordID, content string) error
	// MarkReengaged updates the conversation's re-engagement counter.
	MarkReengaged(ctx context.Context, conversationRecordID string, count int) error
}

// PersonaSource yields the current persona config for message rendering.
type PersonaSource interface {
	Get(ctx context.Context) (*assistant.StoredConfig, error)
}

// Janitor runs the re-engagement sweep on a cron schedule.
type Janitor struct {
	ctab    *crontab.Crontab
	store   Store
	persona PersonaSource
	spec    string
	log     zerolog.Logger
}

func NewJanitor(store Store, persona PersonaSource, cronSpec string, log zerolog.Logger) *Janitor {
	return &Janitor{
		ctab:    crontab.New(),
		store:   store,
		persona: persona,
		spec:    cronSpec,
		log:     log.With().Str("component", "reengagement-janitor").Logger(),
	}
}

// Run schedules the sweep and blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) error {
	if err := j.ctab.AddJob(j.spec, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		if err := j.Sweep(jobCtx); err != nil {
			j.log.Error().Err(err).Msg("re-engagement sweep failed")
		}
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to schedule re-engagement job")
	}
	j.log.Info().Str("cron", j.spec).Msg("re-engagement janitor scheduled")

	<-ctx.Done()
	j.ctab.Shutdown()
	return nil
}

// Sweep re-contacts every idle conversation still under its re-engagement cap.
func (j *Janitor) Sweep(ctx context.Context) error {
	cfg, err := j.store.AdvancedConfig(ctx)
	if err != nil {
		return err
	}
	if err := cfg.Validate(ctx); err != nil {
		return err
	}
	if !cfg.Enabled() {
		return nil
	}

	stored, err := j.persona.Get(ctx)
	if err != nil {
		return err
	}
	message := prompt.ReengagementMessage(stored.Config)

	cutoff := time.Now().Add(-cfg.IdleThreshold())
	idle, err := j.store.IdleConversations(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, conv := range idle {
		if conv.Reengaged >= cfg.ReengageCount {
			continue
		}
		if err := j.store.AppendAssistantMessage(ctx, conv.RecordID, message); err != nil {
			j.log.Error().Err(err).Str("conversation", conv.RecordID).Msg("failed to append re-engagement message")
			continue
		}
		if err := j.store.MarkReengaged(ctx, conv.RecordID, conv.Reengaged+1); err != nil {
			j.log.Error().Err(err).Str("conversation", conv.RecordID).Msg("failed to update re-engagement counter")
			continue
		}
		j.log.Info().Str("conversation", conv.RecordID).Int("count", conv.Reengaged+1).Msg("re-engaged conversation")
	}
	return nil
}
