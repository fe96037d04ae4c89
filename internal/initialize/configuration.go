package initialize

import "strings"

// CommandConfiguration captures persistent settings for the init command.
type CommandConfiguration struct {
	ManifestPath  string   `mapstructure:"manifest"`
	DefaultGroups []string `mapstructure:"groups"`
}

// DefaultCommandConfiguration returns baseline configuration values for the init command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// DefaultConfigurationValues exposes configuration defaults keyed for Viper registration.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + ".manifest": defaults.ManifestPath,
		configurationKeyPrefix + ".groups":   defaults.DefaultGroups,
	}
}

// sanitize trims whitespace and removes empty group names.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ManifestPath = strings.TrimSpace(configuration.ManifestPath)

	sanitizedGroups := make([]string, 0, len(configuration.DefaultGroups))
	for _, groupName := range configuration.DefaultGroups {
		trimmedGroupName := strings.TrimSpace(groupName)
		if len(trimmedGroupName) == 0 {
			continue
		}
		sanitizedGroups = append(sanitizedGroups, trimmedGroupName)
	}
	sanitized.DefaultGroups = sanitizedGroups
	return sanitized
}
