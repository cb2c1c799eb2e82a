package assistant

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Tone is the conversational register the persona must keep.
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneInformal     Tone = "Informal"
	ToneTechnical    Tone = "Technical"
	ToneClose        Tone = "Close"
	ToneEmpathetic   Tone = "Empathetic"
)

// Objective describes what the persona is trying to achieve in a conversation.
type Objective string

const (
	ObjectiveAdvise             Objective = "Advise"
	ObjectivePrequalify         Objective = "Prequalify"
	ObjectiveAdvisePrequalify   Objective = "Advise and Prequalify"
	ObjectiveCollectRefer       Objective = "Collect information and refer"
	ObjectiveCollectAdviseRefer Objective = "Collect information, advise and refer"
)

// Config is the persona definition authored through the configuration form.
// AssistantName, CompanyName and Tone are mandatory; every other free-text
// field is optional and, when empty, its section is omitted from the rendered
// instructions.
type Config struct {
	AssistantName string    `json:"AssistantName" validate:"required"`
	CompanyName   string    `json:"CompanyName" validate:"required"`
	Tone          Tone      `json:"Tone" validate:"required,oneof=Professional Informal Technical Close Empathetic"`
	Objective     Objective `json:"Objective,omitempty"`

	CompanyDescription  string `json:"CompanyDescription,omitempty"`
	Sector              string `json:"Sector,omitempty"`
	TargetCustomers     string `json:"TargetCustomers,omitempty"`
	Personality         string `json:"Personality,omitempty"`
	QualifyingQuestions string `json:"QualifyingQuestions,omitempty"`
	FAQ                 string `json:"FAQ,omitempty"`
	ConversationSamples string `json:"ConversationSamples,omitempty"`
	ObjectionHandling   string `json:"ObjectionHandling,omitempty"`
	UnavailableProducts string `json:"UnavailableProducts,omitempty"`
	DoNotAnswer         string `json:"DoNotAnswer,omitempty"`
	ExtraInfo           string `json:"ExtraInfo,omitempty"`
	SourceSites         string `json:"SourceSites,omitempty"`
	ReengagementMessage string `json:"ReengagementMessage,omitempty"`
	CustomCommands      string `json:"CustomCommands,omitempty"`

	// HostedAssistantID links the stored persona to the hosted assistant
	// instance. Empty until the configuration is saved for the first time.
	HostedAssistantID string `json:"HostedAssistantID,omitempty"`
}

var validate = validator.New()

// knownObjectives guards the enum here rather than in a struct tag: the
// variant names contain commas, which the tag syntax cannot carry.
var knownObjectives = map[Objective]struct{}{
	ObjectiveAdvise:             {},
	ObjectivePrequalify:         {},
	ObjectiveAdvisePrequalify:   {},
	ObjectiveCollectRefer:       {},
	ObjectiveCollectAdviseRefer: {},
}

// Validate checks the mandatory fields and enum values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Objective != "" {
		if _, ok := knownObjectives[c.Objective]; !ok {
			return fmt.Errorf("unknown objective %q", c.Objective)
		}
	}
	return nil
}

// Configured reports whether a hosted assistant has been provisioned for
// this persona.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.HostedAssistantID) != ""
}

// Complete reports whether the mandatory persona fields are filled in.
func (c Config) Complete() bool {
	return strings.TrimSpace(c.AssistantName) != "" && strings.TrimSpace(c.CompanyName) != ""
}

// StoredConfig pairs a persona with its record id in the record store.
type StoredConfig struct {
	RecordID string
	Config
}
