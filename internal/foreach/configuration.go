package foreach

import "strings"

// CommandConfiguration captures persistent settings for the foreach command.
type CommandConfiguration struct {
	WorkspacePath string `mapstructure:"workspace"`
}

// DefaultCommandConfiguration returns baseline configuration values for the foreach command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{WorkspacePath: ""}
}

// DefaultConfigurationValues exposes configuration defaults keyed for Viper registration.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".workspace": defaults.WorkspacePath,
	}
}

// sanitize trims whitespace from configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WorkspacePath = strings.TrimSpace(configuration.WorkspacePath)
	return sanitized
}
