// Package config provides configuration loading and management for testgen.
//
// Configuration is loaded using Viper, supporting YAML config files and
// environment variable overrides. The package provides sensible defaults that
// work out of the box against a local Ollama instance, with the ability to
// customize the prompt template, model parameters, and output formatting.
// Jira credentials come from the environment (optionally via a .env file) and
// never from the config file.
//
// Key types:
//   - [Config] is the root configuration container with all settings
//   - [Loader] handles Viper-based configuration loading
//   - [JiraConfig] holds the tracker server URL and credentials
//   - [ModelConfig] holds the completion endpoint and sampling parameters
//
// Configuration priority (highest to lowest):
//  1. Environment variables (TESTGEN_ prefix; JIRA_* for credentials)
//  2. Config file specified by TESTGEN_CONFIG_PATH
//  3. User config directory: ~/.config/testgen/testgen.yaml (platform-standard)
//  4. ./testgen.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Config represents the root configuration structure.
//
// This is the main configuration container loaded by [Loader] and used
// throughout the application. Use [DefaultConfig] to get sensible defaults.
type Config struct {
	// Jira contains tracker server settings and credentials.
	Jira JiraConfig `mapstructure:"jira"`

	// Model contains language-model endpoint and sampling settings.
	Model ModelConfig `mapstructure:"model"`

	// Prompt contains the test-case generation prompt template.
	Prompt PromptConfig `mapstructure:"prompt"`

	// Output contains terminal output formatting configuration.
	Output OutputConfig `mapstructure:"output"`
}

// JiraConfig contains Jira server settings and credentials.
//
// Credentials are sourced from the JIRA_SERVER, JIRA_EMAIL and JIRA_API_TOKEN
// environment variables (a .env file in the working directory is honored).
// They are kept out of the YAML config file so the file can be committed.
type JiraConfig struct {
	// ServerURL is the base URL of the Jira instance,
	// e.g. "https://example.atlassian.net".
	ServerURL string `mapstructure:"server_url"`

	// Email is the account email for basic auth.
	Email string `mapstructure:"email"`

	// APIToken is the API token for basic auth.
	APIToken string `mapstructure:"api_token"`
}

// Validate checks that all credential fields are present.
//
// Returns an error naming every missing field, so a misconfigured environment
// is reported in one pass rather than one variable at a time.
func (c JiraConfig) Validate() error {
	var missing []string
	if c.ServerURL == "" {
		missing = append(missing, "JIRA_SERVER")
	}
	if c.Email == "" {
		missing = append(missing, "JIRA_EMAIL")
	}
	if c.APIToken == "" {
		missing = append(missing, "JIRA_API_TOKEN")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing Jira credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ModelConfig contains language-model settings.
//
// These settings control the completion endpoint and the fixed sampling
// parameters used for every generation call.
type ModelConfig struct {
	// Endpoint is the full URL of the completions endpoint.
	// Default: "http://localhost:11434/v1/completions".
	Endpoint string `mapstructure:"endpoint"`

	// Name is the model identifier sent with each request.
	// Default: "llama3.1:latest".
	Name string `mapstructure:"name"`

	// MaxTokens bounds the completion length. Default: 1024.
	MaxTokens int `mapstructure:"max_tokens"`

	// Temperature is the fixed sampling temperature. Default: 0.5.
	Temperature float64 `mapstructure:"temperature"`
}

// PromptConfig contains the test-case generation prompt settings.
type PromptConfig struct {
	// Template is a Go text/template expanded with [PromptData].
	// The default embeds the story summary, description and comma-joined
	// acceptance criteria.
	Template string `mapstructure:"template"`
}

// OutputConfig contains terminal output formatting configuration.
type OutputConfig struct {
	// TruncateLength is the maximum length of prompt and body excerpts
	// printed to the terminal. Default: 60.
	TruncateLength int `mapstructure:"truncate_length"`
}

// CommentHeading is the fixed markdown heading under which generated test
// cases are posted back to the issue.
const CommentHeading = "### Generated Test Cases:"

// defaultPromptTemplate mirrors the prompt wording the pipeline has always
// used; the summary, description and comma-joined criteria appear verbatim.
const defaultPromptTemplate = `Generate test cases for the following JIRA story:

Title: {{.Summary}}
Description: {{.Description}}
Acceptance Criteria:
{{.AcceptanceCriteria}}

Please provide detailed test cases.`

// DefaultConfig returns a new [Config] with sensible defaults.
//
// The defaults target a local Ollama instance and work without any
// configuration file. Jira credentials are intentionally empty; they must
// come from the environment.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Endpoint:    "http://localhost:11434/v1/completions",
			Name:        "llama3.1:latest",
			MaxTokens:   1024,
			Temperature: 0.5,
		},
		Prompt: PromptConfig{
			Template: defaultPromptTemplate,
		},
		Output: OutputConfig{
			TruncateLength: 60,
		},
	}
}

// PromptData contains data for prompt template expansion.
//
// This struct is passed to Go's text/template when expanding the prompt
// template. Fields are accessible in templates using {{.FieldName}} syntax.
type PromptData struct {
	// Summary is the story title. Access in templates with {{.Summary}}.
	Summary string

	// Description is the story's free-text description.
	Description string

	// AcceptanceCriteria is the comma-joined acceptance criteria list.
	AcceptanceCriteria string
}

// RenderPrompt expands the configured prompt template with the given data.
//
// Returns an error if the template fails to parse or execute.
func (c *Config) RenderPrompt(data PromptData) (string, error) {
	return expandTemplate(c.Prompt.Template, data)
}

// expandTemplate parses and executes a template string with the given data.
func expandTemplate(tmpl string, data PromptData) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("expanding prompt template: %w", err)
	}

	return buf.String(), nil
}
