// Package prompt renders hosted-assistant instructions from a persona
// configuration. Rendering is pure and deterministic: the same configuration
// always produces byte-identical output, optional fields that are empty omit
// their whole section, and section order never depends on which fields are
// present.
package prompt

import (
	"fmt"
	"strings"

	"chatdesk/assistant-api/internal/domain/assistant"
)

// BuildInstructions renders the system prompt for the given persona.
func BuildInstructions(cfg assistant.Config) string {
	var b strings.Builder

	b.WriteString(identity(cfg))

	writeSection(&b, "Company description", cfg.CompanyDescription)
	writeSection(&b, "Sector", cfg.Sector)
	writeSection(&b, "Target customers", cfg.TargetCustomers)
	writeSection(&b, "Personality", cfg.Personality)

	if objective := strings.TrimSpace(string(cfg.Objective)); objective != "" {
		b.WriteString("\n\nObjective: ")
		b.WriteString(objective)
		if body, ok := objectiveBodies[cfg.Objective]; ok {
			b.WriteString("\n")
			b.WriteString(body)
		}
	}

	writeSection(&b, "Qualifying questions", cfg.QualifyingQuestions)
	writeSection(&b, "Frequently asked questions", cfg.FAQ)
	writeSection(&b, "Conversation examples", cfg.ConversationSamples)
	writeSection(&b, "Objection handling", cfg.ObjectionHandling)
	writeSection(&b, "Unavailable products or services", cfg.UnavailableProducts)
	writeSection(&b, "Do not answer", cfg.DoNotAnswer)
	writeSection(&b, "Additional information", cfg.ExtraInfo)
	writeSection(&b, "Reference websites", cfg.SourceSites)

	writeSection(&b, "Re-engagement", ReengagementMessage(cfg))

	b.WriteString("\n\n")
	b.WriteString(mandatoryInstructions)
	b.WriteString("\n\n")
	b.WriteString(lexicon)

	if commands := strings.TrimSpace(cfg.CustomCommands); commands != "" {
		b.WriteString("\n---\n")
		b.WriteString(commands)
	}

	return b.String()
}

// ReengagementMessage returns the configured re-engagement message verbatim,
// or a generic persuasive fallback when none is configured.
func ReengagementMessage(cfg assistant.Config) string {
	if msg := strings.TrimSpace(cfg.ReengagementMessage); msg != "" {
		return msg
	}
	return fmt.Sprintf(
		"If the customer stops replying, send one short follow-up in a %s tone: remind them why %s can help, "+
			"reference what they last asked about, and invite them to continue the conversation.",
		toneLower(cfg.Tone), cfg.CompanyName,
	)
}

func identity(cfg assistant.Config) string {
	return fmt.Sprintf(
		"You are %s, the virtual assistant for %s. You answer on behalf of %s and the tone must be %s in every reply.\n\nTone: %s",
		cfg.AssistantName, cfg.CompanyName, cfg.CompanyName, toneLower(cfg.Tone), cfg.Tone,
	)
}

// writeSection appends a heading plus content, skipping the section entirely
// when the content is empty. Sections are separated by a blank line.
func writeSection(b *strings.Builder, heading, content string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return
	}
	b.WriteString("\n\n")
	b.WriteString(heading)
	b.WriteString(":\n")
	b.WriteString(content)
}

func toneLower(tone assistant.Tone) string {
	return strings.ToLower(string(tone))
}
