package initialize

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pathutils "github.com/temirov/fleet/internal/utils/path"
	"github.com/temirov/fleet/internal/workspace"
)

const (
	commandUseConstant   = "init"
	commandShortConstant = "Record workspace configuration for this directory"
	commandLongConstant  = "init validates the manifest, verifies the requested default groups exist, " +
		"and records the workspace configuration under the " + workspace.HiddenDirectoryNameConstant + " directory."

	flagManifestNameConstant  = "manifest"
	flagManifestUsageConstant = "Path to the manifest file describing the workspace repositories."
	flagGroupNameConstant     = "group"
	flagGroupShorthand        = "g"
	flagGroupUsageConstant    = "Default manifest group recorded for this workspace (repeatable)."
	flagRootNameConstant      = "root"
	flagRootUsageConstant     = "Workspace root directory to initialize."
	defaultRootPathConstant   = "."

	workspaceInitializedLogMessageConstant = "workspace initialized"
	logFieldRootPathConstant               = "root_path"
	logFieldManifestPathConstant           = "manifest_path"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted init configuration.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the init cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	FileSystem            workspace.FileSystem
}

// Build constructs the cobra command for workspace initialization.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().String(flagManifestNameConstant, "", flagManifestUsageConstant)
	command.Flags().StringArrayP(flagGroupNameConstant, flagGroupShorthand, nil, flagGroupUsageConstant)
	command.Flags().String(flagRootNameConstant, defaultRootPathConstant, flagRootUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	manifestPath, _ := command.Flags().GetString(flagManifestNameConstant)
	defaultGroups, _ := command.Flags().GetStringArray(flagGroupNameConstant)
	rootPath, _ := command.Flags().GetString(flagRootNameConstant)

	configuration := builder.resolveConfiguration()
	if len(strings.TrimSpace(manifestPath)) == 0 {
		manifestPath = configuration.ManifestPath
	}
	if len(defaultGroups) == 0 {
		defaultGroups = configuration.DefaultGroups
	}

	homeExpander := pathutils.NewHomeExpander()
	options := Options{
		RootPath:      homeExpander.Expand(rootPath),
		ManifestPath:  homeExpander.Expand(manifestPath),
		DefaultGroups: defaultGroups,
	}

	service := NewService(builder.FileSystem, command.OutOrStdout())
	if runError := service.Run(options); runError != nil {
		return runError
	}

	builder.resolveLogger().Info(
		workspaceInitializedLogMessageConstant,
		zap.String(logFieldRootPathConstant, options.RootPath),
		zap.String(logFieldManifestPathConstant, options.ManifestPath),
	)
	return nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().sanitize()
}
