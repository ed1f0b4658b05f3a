package config

import (
	"fmt"
	"time"
)

var knownLLMProviders = map[string]bool{"groq": true, "gemini": true, "anthropic": true}

// Section selects the parts of the configuration a command validates.
type Section uint8

const (
	// SectionSession covers JWT signing of session cookies.
	SectionSession Section = 1 << iota
	// SectionGoogle covers the Google OAuth client used for sign-in and token refresh.
	SectionGoogle
	// SectionLLM covers the text-generation backend.
	SectionLLM
	// SectionForms covers form provisioning defaults.
	SectionForms
	// SectionReconciler covers the lifecycle sweep.
	SectionReconciler

	// SectionAll is what the API server needs.
	SectionAll = SectionSession | SectionGoogle | SectionLLM | SectionForms | SectionReconciler
)

// Validate performs business-rule validation on every section.
// Load calls it automatically.
func (c *Config) Validate() error {
	return c.ValidateSections(SectionAll)
}

// ValidateSections validates only the selected sections. The database DSN is
// required by every command and is enforced while loading.
func (c *Config) ValidateSections(sections Section) error {
	if sections&SectionSession != 0 && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if sections&SectionGoogle != 0 && (c.Auth.GoogleClientID == "" || c.Auth.GoogleClientSecret == "") {
		return fmt.Errorf("auth.google_client_id and auth.google_client_secret are required")
	}

	if sections&SectionLLM != 0 {
		if err := c.LLM.validate(); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}

	if sections&SectionForms != 0 {
		if err := c.Forms.validate(); err != nil {
			return fmt.Errorf("forms: %w", err)
		}
	}

	if sections&SectionReconciler != 0 {
		if c.Reconciler.Interval <= 0 {
			return fmt.Errorf("reconciler.interval must be > 0 (got %v)", c.Reconciler.Interval)
		}
		if c.Reconciler.SweepTimeout <= 0 {
			return fmt.Errorf("reconciler.sweep_timeout must be > 0 (got %v)", c.Reconciler.SweepTimeout)
		}
	}

	return nil
}

func (l *LLMConfig) validate() error {
	if !knownLLMProviders[l.Provider] {
		return fmt.Errorf("unknown provider %q", l.Provider)
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if l.AnalyzeTemperature < 0 || l.AnalyzeTemperature > 2 {
		return fmt.Errorf("analyze_temperature must be in [0, 2] (got %v)", l.AnalyzeTemperature)
	}
	if l.GenerateTemperature < 0 || l.GenerateTemperature > 2 {
		return fmt.Errorf("generate_temperature must be in [0, 2] (got %v)", l.GenerateTemperature)
	}
	if l.AnalyzeMaxTokens <= 0 {
		return fmt.Errorf("analyze_max_tokens must be > 0 (got %d)", l.AnalyzeMaxTokens)
	}
	if l.GenerateMaxTokens <= 0 {
		return fmt.Errorf("generate_max_tokens must be > 0 (got %d)", l.GenerateMaxTokens)
	}
	return nil
}

func (f *FormsConfig) validate() error {
	loc, err := time.LoadLocation(f.ExpiryTimeZone)
	if err != nil {
		return fmt.Errorf("expiry_time_zone: %w", err)
	}
	f.ExpiryLocation = loc
	return nil
}
