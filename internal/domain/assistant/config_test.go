package assistant_test

import (
	"testing"

	"chatdesk/assistant-api/internal/domain/assistant"
)

func TestConfig_Validate(t *testing.T) {
	valid := assistant.Config{
		AssistantName: "Lia",
		CompanyName:   "Acme Kitchens",
		Tone:          assistant.ToneClose,
	}

	tests := []struct {
		name    string
		mutate  func(*assistant.Config)
		wantErr bool
	}{
		{"valid minimal config", func(c *assistant.Config) {}, false},
		{"valid with objective", func(c *assistant.Config) { c.Objective = assistant.ObjectiveCollectAdviseRefer }, false},
		{"missing assistant name", func(c *assistant.Config) { c.AssistantName = "" }, true},
		{"missing company name", func(c *assistant.Config) { c.CompanyName = "" }, true},
		{"missing tone", func(c *assistant.Config) { c.Tone = "" }, true},
		{"unknown tone", func(c *assistant.Config) { c.Tone = "Sarcastic" }, true},
		{"unknown objective", func(c *assistant.Config) { c.Objective = "Upsell" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Configured(t *testing.T) {
	cfg := assistant.Config{}
	if cfg.Configured() {
		t.Error("empty hosted assistant id must not count as configured")
	}
	cfg.HostedAssistantID = " asst_1 "
	if !cfg.Configured() {
		t.Error("non-empty hosted assistant id must count as configured")
	}
}
