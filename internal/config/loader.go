package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Loader handles Viper-based configuration loading.
//
// Create instances with [NewLoader]. Use [Loader.Load] for the standard
// search-path behavior or [Loader.LoadFromFile] to read an explicit file.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new [Loader] with defaults and environment bindings
// registered.
func NewLoader() *Loader {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("model.endpoint", defaults.Model.Endpoint)
	v.SetDefault("model.name", defaults.Model.Name)
	v.SetDefault("model.max_tokens", defaults.Model.MaxTokens)
	v.SetDefault("model.temperature", defaults.Model.Temperature)
	v.SetDefault("prompt.template", defaults.Prompt.Template)
	v.SetDefault("output.truncate_length", defaults.Output.TruncateLength)

	v.SetEnvPrefix("TESTGEN")
	v.AutomaticEnv()

	// Credentials use the Jira-conventional variable names rather than the
	// TESTGEN_ prefix, matching what users already have in their environment.
	v.BindEnv("jira.server_url", "JIRA_SERVER")
	v.BindEnv("jira.email", "JIRA_EMAIL")
	v.BindEnv("jira.api_token", "JIRA_API_TOKEN")

	v.BindEnv("model.endpoint", "TESTGEN_MODEL_ENDPOINT")
	v.BindEnv("model.name", "TESTGEN_MODEL_NAME")

	return &Loader{v: v}
}

// Load reads configuration from the standard search path.
//
// A .env file in the working directory is loaded first (missing file is not
// an error) so JIRA_* credentials can live alongside the project. Then the
// config file is located: TESTGEN_CONFIG_PATH if set, otherwise
// testgen.yaml in the user config directory, otherwise ./testgen.yaml.
// A missing config file falls back to defaults; a malformed one is an error.
func (l *Loader) Load() (*Config, error) {
	godotenv.Load()

	if path := os.Getenv("TESTGEN_CONFIG_PATH"); path != "" {
		return l.LoadFromFile(path)
	}

	l.v.SetConfigName("testgen")
	l.v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(dir, "testgen"))
	}
	l.v.AddConfigPath(".")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file anywhere; defaults and env bindings still apply.
	}

	return l.unmarshal()
}

// LoadFromFile reads configuration from an explicit file path.
//
// Environment bindings still take priority over file values. Returns an error
// if the file cannot be read or parsed.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	godotenv.Load()

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return l.unmarshal()
}

// unmarshal decodes the merged Viper state into a [Config].
func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}
