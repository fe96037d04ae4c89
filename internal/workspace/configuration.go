package workspace

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

const (
	configurationReadErrorTemplateConstant   = "unable to read workspace configuration %s: %w"
	configurationParseErrorTemplateConstant  = "unable to parse workspace configuration: %w"
	configurationEncodeErrorTemplateConstant = "unable to encode workspace configuration: %w"
	configurationWriteErrorTemplateConstant  = "unable to write workspace configuration %s: %w"

	hiddenDirectoryPermissionsConstant   fs.FileMode = 0o755
	configurationFilePermissionsConstant fs.FileMode = 0o644
)

// Configuration captures the persisted settings recorded at workspace initialization.
type Configuration struct {
	ManifestPath  string   `yaml:"manifest_path"`
	DefaultGroups []string `yaml:"default_groups,omitempty"`
}

// LoadConfiguration reads the persisted configuration from the workspace marker directory.
func (workspace *Workspace) LoadConfiguration() (Configuration, error) {
	configurationPath := workspace.ConfigurationPath()
	configurationContent, readError := workspace.fileSystem.ReadFile(configurationPath)
	if readError != nil {
		return Configuration{}, fmt.Errorf(configurationReadErrorTemplateConstant, configurationPath, readError)
	}

	var configuration Configuration
	if unmarshalError := yaml.Unmarshal(configurationContent, &configuration); unmarshalError != nil {
		return Configuration{}, fmt.Errorf(configurationParseErrorTemplateConstant, unmarshalError)
	}
	return configuration, nil
}

// SaveConfiguration persists the configuration beneath the workspace marker directory.
func (workspace *Workspace) SaveConfiguration(configuration Configuration) error {
	if mkdirError := workspace.fileSystem.MkdirAll(workspace.HiddenDirectoryPath(), hiddenDirectoryPermissionsConstant); mkdirError != nil {
		return mkdirError
	}

	encodedConfiguration, marshalError := yaml.Marshal(configuration)
	if marshalError != nil {
		return fmt.Errorf(configurationEncodeErrorTemplateConstant, marshalError)
	}

	configurationPath := workspace.ConfigurationPath()
	if writeError := workspace.fileSystem.WriteFile(configurationPath, encodedConfiguration, configurationFilePermissionsConstant); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, configurationPath, writeError)
	}
	return nil
}
