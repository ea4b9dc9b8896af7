package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1/completions", cfg.Model.Endpoint)
	assert.Equal(t, "llama3.1:latest", cfg.Model.Name)
	assert.Equal(t, 1024, cfg.Model.MaxTokens)
	assert.Equal(t, 0.5, cfg.Model.Temperature)
	assert.Equal(t, 60, cfg.Output.TruncateLength)

	// Credentials come from the environment, never from defaults
	assert.Empty(t, cfg.Jira.ServerURL)
	assert.Empty(t, cfg.Jira.APIToken)
}

func TestConfig_RenderPrompt(t *testing.T) {
	cfg := DefaultConfig()

	prompt, err := cfg.RenderPrompt(PromptData{
		Summary:            "Reset password",
		Description:        "Intro\n- step one\n- step two",
		AcceptanceCriteria: "- step one, - step two",
	})

	require.NoError(t, err)
	assert.Contains(t, prompt, "Reset password")
	assert.Contains(t, prompt, "Intro\n- step one\n- step two")
	assert.Contains(t, prompt, "- step one, - step two")
}

func TestConfig_RenderPrompt_CustomTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prompt.Template = "Cases for {{.Summary}}"

	prompt, err := cfg.RenderPrompt(PromptData{Summary: "Login"})

	require.NoError(t, err)
	assert.Equal(t, "Cases for Login", prompt)
}

func TestConfig_RenderPrompt_InvalidTemplate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Prompt.Template = "{{.Broken"

	_, err := cfg.RenderPrompt(PromptData{})

	assert.Error(t, err)
}

func TestJiraConfig_Validate(t *testing.T) {
	valid := JiraConfig{ServerURL: "https://x.atlassian.net", Email: "e@x.com", APIToken: "t"}
	assert.NoError(t, valid.Validate())

	err := JiraConfig{Email: "e@x.com"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JIRA_SERVER")
	assert.Contains(t, err.Error(), "JIRA_API_TOKEN")
	assert.NotContains(t, err.Error(), "JIRA_EMAIL")
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
model:
  endpoint: http://model-host:8080/v1/completions
  name: custom-model
  max_tokens: 256
prompt:
  template: "Custom: {{.Summary}}"
output:
  truncate_length: 100
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "http://model-host:8080/v1/completions", cfg.Model.Endpoint)
	assert.Equal(t, "custom-model", cfg.Model.Name)
	assert.Equal(t, 256, cfg.Model.MaxTokens)
	assert.Equal(t, "Custom: {{.Summary}}", cfg.Prompt.Template)
	assert.Equal(t, 100, cfg.Output.TruncateLength)
}

func TestLoader_LoadFromFile_PartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.yaml")

	err := os.WriteFile(configPath, []byte("model:\n  name: other-model\n"), 0644)
	require.NoError(t, err)

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "other-model", cfg.Model.Name)
	assert.Equal(t, 1024, cfg.Model.MaxTokens)
}

func TestLoader_LoadFromFile_NonExistent(t *testing.T) {
	loader := NewLoader()
	_, err := loader.LoadFromFile("/nonexistent/path/config.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoader_Load_WithCredentialEnv(t *testing.T) {
	t.Setenv("JIRA_SERVER", "https://env.atlassian.net")
	t.Setenv("JIRA_EMAIL", "env@example.com")
	t.Setenv("JIRA_API_TOKEN", "env-token")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "https://env.atlassian.net", cfg.Jira.ServerURL)
	assert.Equal(t, "env@example.com", cfg.Jira.Email)
	assert.Equal(t, "env-token", cfg.Jira.APIToken)
	assert.NoError(t, cfg.Jira.Validate())
}

func TestLoader_Load_WithModelEnvOverride(t *testing.T) {
	t.Setenv("TESTGEN_MODEL_ENDPOINT", "http://override:9999/v1/completions")

	loader := NewLoader()
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "http://override:9999/v1/completions", cfg.Model.Endpoint)
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}
