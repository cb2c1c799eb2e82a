package prompt

import (
	"strings"
	"testing"

	"chatdesk/assistant-api/internal/domain/assistant"
)

func baseConfig() assistant.Config {
	return assistant.Config{
		AssistantName: "Lia",
		CompanyName:   "Acme Kitchens",
		Tone:          assistant.ToneProfessional,
	}
}

func TestBuildInstructions_Deterministic(t *testing.T) {
	cfg := baseConfig()
	cfg.CompanyDescription = "We build custom kitchens."
	cfg.Objective = assistant.ObjectiveAdvise

	first := BuildInstructions(cfg)
	second := BuildInstructions(cfg)

	if first != second {
		t.Error("rendering the same config twice must produce identical output")
	}
}

func TestBuildInstructions_EmptyFieldsOmitSections(t *testing.T) {
	out := BuildInstructions(baseConfig())

	for _, heading := range []string{
		"Company description:",
		"Sector:",
		"Target customers:",
		"Personality:",
		"Qualifying questions:",
		"Frequently asked questions:",
		"Conversation examples:",
		"Objection handling:",
		"Unavailable products or services:",
		"Do not answer:",
		"Additional information:",
		"Reference websites:",
	} {
		if strings.Contains(out, heading) {
			t.Errorf("empty field must not render heading %q", heading)
		}
	}

	// Always-on blocks still render.
	for _, heading := range []string{"Re-engagement:", "Mandatory instructions:", "Lexicon:"} {
		if !strings.Contains(out, heading) {
			t.Errorf("missing always-rendered block %q", heading)
		}
	}
}

func TestBuildInstructions_SingleFieldDiff(t *testing.T) {
	without := BuildInstructions(baseConfig())

	cfg := baseConfig()
	cfg.Sector = "Home improvement"
	with := BuildInstructions(cfg)

	if !strings.Contains(with, "Sector:\nHome improvement") {
		t.Fatal("populated field must render heading plus content")
	}

	// The two renders differ by exactly one contiguous block: removing the
	// sector section from the populated output reproduces the other byte for byte.
	stripped := strings.Replace(with, "\n\nSector:\nHome improvement", "", 1)
	if stripped != without {
		t.Error("adding one optional field must insert exactly one contiguous section")
	}
}

func TestBuildInstructions_SectionOrderIsFixed(t *testing.T) {
	cfg := baseConfig()
	cfg.Personality = "Warm and direct"
	cfg.SourceSites = "https://acme.example"
	out := BuildInstructions(cfg)

	personality := strings.Index(out, "Personality:")
	sites := strings.Index(out, "Reference websites:")
	reengage := strings.Index(out, "Re-engagement:")
	mandatory := strings.Index(out, "Mandatory instructions:")

	if !(personality < sites && sites < reengage && reengage < mandatory) {
		t.Error("present sections must keep their canonical order regardless of which fields are set")
	}
}

func TestBuildInstructions_ObjectiveBodies(t *testing.T) {
	tests := []struct {
		name      string
		objective assistant.Objective
		wantBody  bool
	}{
		{"advise has body", assistant.ObjectiveAdvise, true},
		{"prequalify has body", assistant.ObjectivePrequalify, true},
		{"combined has body", assistant.ObjectiveAdvisePrequalify, true},
		{"collect and refer has body", assistant.ObjectiveCollectRefer, true},
		{"collect advise refer has body", assistant.ObjectiveCollectAdviseRefer, true},
		{"unknown renders line only", assistant.Objective("Sell aggressively"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Objective = tt.objective
			out := BuildInstructions(cfg)

			line := "Objective: " + string(tt.objective)
			idx := strings.Index(out, line)
			if idx < 0 {
				t.Fatalf("missing objective line %q", line)
			}

			rest := out[idx+len(line):]
			hasBody := strings.HasPrefix(rest, "\n") && !strings.HasPrefix(rest, "\n\n")
			if hasBody != tt.wantBody {
				t.Errorf("objective %q: body rendered = %v, want %v", tt.objective, hasBody, tt.wantBody)
			}
		})
	}
}

func TestBuildInstructions_ObjectiveEmptyOmitted(t *testing.T) {
	out := BuildInstructions(baseConfig())
	if strings.Contains(out, "Objective:") {
		t.Error("empty objective must omit the objective section entirely")
	}
}

func TestBuildInstructions_ToneEmbedding(t *testing.T) {
	cfg := baseConfig()
	cfg.Tone = assistant.ToneEmpathetic
	out := BuildInstructions(cfg)

	if !strings.Contains(out, "the tone must be empathetic") {
		t.Error("inline tone must be lower-cased")
	}
	if !strings.Contains(out, "Tone: Empathetic") {
		t.Error("tone heading must keep the value as typed")
	}
}

func TestReengagementMessage(t *testing.T) {
	cfg := baseConfig()

	fallback := ReengagementMessage(cfg)
	if !strings.Contains(fallback, "professional tone") {
		t.Error("fallback must interpolate the lower-cased tone")
	}
	if !strings.Contains(fallback, cfg.CompanyName) {
		t.Error("fallback must mention the company")
	}

	cfg.ReengagementMessage = "Ping them after a day."
	if got := ReengagementMessage(cfg); got != "Ping them after a day." {
		t.Errorf("configured message must be used verbatim, got %q", got)
	}
}

func TestBuildInstructions_CustomCommandsLast(t *testing.T) {
	cfg := baseConfig()
	cfg.CustomCommands = "/price -> quote the standard price list"
	out := BuildInstructions(cfg)

	if !strings.HasSuffix(out, "---\n/price -> quote the standard price list") {
		t.Error("custom commands must be the final block, prefixed by a separator line")
	}

	cfg.CustomCommands = ""
	if strings.Contains(BuildInstructions(cfg), "---") {
		t.Error("separator must not render without custom commands")
	}
}
