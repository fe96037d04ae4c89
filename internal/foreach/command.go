package foreach

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/fleet/internal/execshell"
	"github.com/temirov/fleet/internal/selection"
	"github.com/temirov/fleet/internal/ui"
	"github.com/temirov/fleet/internal/utils"
	pathutils "github.com/temirov/fleet/internal/utils/path"
	"github.com/temirov/fleet/internal/workspace"
)

const (
	commandUseConstant   = "foreach [flags] -- command [args...]"
	commandShortConstant = "Run a command in every selected repository"
	commandLongConstant  = "foreach runs an arbitrary command sequentially in each selected repository, " +
		"keeps going past per-repository failures, and reports every failing repository at the end."
	commandExampleConstant = `  # Run a command directly
  fleet foreach -- git status --short

  # Run a command through the shell
  fleet foreach --shell 'ls README*'

  # Restrict the run to specific manifest groups
  fleet foreach --group tools --group services -- git fetch`

	flagWorkspaceNameConstant      = "workspace"
	flagWorkspaceShorthandConstant = "w"
	flagWorkspaceUsageConstant     = "Path to the workspace root (defaults to searching parent directories)."
	flagGroupNameConstant          = "group"
	flagGroupShorthandConstant     = "g"
	flagGroupUsageConstant         = "Manifest group to operate on (repeatable)."
	flagAllClonedNameConstant      = "all-cloned"
	flagAllClonedUsageConstant     = "Operate on every repository currently cloned on disk."
	flagShellNameConstant          = "shell"
	flagShellShorthandConstant     = "c"
	flagShellUsageConstant         = "Interpret the single command argument with the platform shell."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the persisted foreach configuration.
type ConfigurationProvider func() CommandConfiguration

// HumanReadableLoggingProvider reports whether console-format logging is active.
type HumanReadableLoggingProvider func() bool

// CommandBuilder assembles the foreach cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider HumanReadableLoggingProvider
	CommandRunner                execshell.CommandRunner
	WorkspaceFileSystem          workspace.FileSystem
}

// Build constructs the cobra command for the foreach tool.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortConstant,
		Long:    commandLongConstant,
		Example: commandExampleConstant,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	command.Flags().SetInterspersed(false)
	command.Flags().StringP(flagWorkspaceNameConstant, flagWorkspaceShorthandConstant, "", flagWorkspaceUsageConstant)
	command.Flags().StringArrayP(flagGroupNameConstant, flagGroupShorthandConstant, nil, flagGroupUsageConstant)
	command.Flags().Bool(flagAllClonedNameConstant, false, flagAllClonedUsageConstant)
	command.Flags().BoolP(flagShellNameConstant, flagShellShorthandConstant, false, flagShellUsageConstant)

	return command, nil
}

type commandOptions struct {
	workspacePath    string
	selectionRequest selection.Request
	specification    CommandSpec
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (commandOptions, error) {
	workspacePath, _ := command.Flags().GetString(flagWorkspaceNameConstant)
	groupNames, _ := command.Flags().GetStringArray(flagGroupNameConstant)
	allCloned, _ := command.Flags().GetBool(flagAllClonedNameConstant)
	useShell, _ := command.Flags().GetBool(flagShellNameConstant)

	specification, specificationError := buildCommandSpec(arguments, useShell)
	if specificationError != nil {
		if helpError := command.Help(); helpError != nil {
			return commandOptions{}, helpError
		}
		return commandOptions{}, specificationError
	}

	return commandOptions{
		workspacePath:    workspacePath,
		selectionRequest: selection.Request{Groups: groupNames, AllCloned: allCloned},
		specification:    specification,
	}, nil
}

func buildCommandSpec(arguments []string, useShell bool) (CommandSpec, error) {
	if useShell {
		if len(arguments) != 1 {
			return CommandSpec{}, ErrEmptyShellLine
		}
		return NewShellCommand(arguments[0])
	}
	return NewArgvCommand(arguments)
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	targetWorkspace, workspaceError := builder.resolveWorkspace(options.workspacePath)
	if workspaceError != nil {
		return workspaceError
	}

	workspaceConfiguration, configurationError := targetWorkspace.LoadConfiguration()
	if configurationError != nil {
		return configurationError
	}

	workspaceManifest, manifestError := targetWorkspace.LoadManifest(workspaceConfiguration)
	if manifestError != nil {
		return manifestError
	}

	workspaceState := targetWorkspace.Snapshot(workspaceManifest, workspaceConfiguration)

	targetRepositories, resolveError := selection.Resolve(workspaceManifest, workspaceState, options.selectionRequest)
	if resolveError != nil {
		return resolveError
	}

	shellExecutor, executorError := builder.resolveShellExecutor(command, logger)
	if executorError != nil {
		return executorError
	}

	service := NewService(shellExecutor, targetWorkspace, command.OutOrStdout(), command.ErrOrStderr())
	outcomes, runError := service.Run(command.Context(), targetRepositories, options.specification)

	overallResult := Summarize(outcomes)
	WriteReport(command.OutOrStdout(), overallResult)

	if runError != nil {
		return runError
	}
	if !overallResult.Success() {
		return ErrCommandFailed
	}
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

func (builder *CommandBuilder) resolveWorkspace(flagWorkspacePath string) (*workspace.Workspace, error) {
	configuredWorkspacePath := builder.resolveConfiguration().WorkspacePath

	startDirectory := flagWorkspacePath
	if len(startDirectory) == 0 {
		startDirectory = configuredWorkspacePath
	}
	if len(startDirectory) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return nil, workingDirectoryError
		}
		startDirectory = workingDirectory
	}

	expandedStartDirectory := pathutils.NewHomeExpander().Expand(startDirectory)
	return workspace.Locate(expandedStartDirectory, builder.WorkspaceFileSystem)
}

func (builder *CommandBuilder) resolveShellExecutor(command *cobra.Command, logger *zap.Logger) (*execshell.ShellExecutor, error) {
	commandRunner := builder.CommandRunner
	if commandRunner == nil {
		commandRunner = execshell.NewStreamingCommandRunner(
			utils.NewFlushingWriter(command.OutOrStdout()),
			utils.NewFlushingWriter(command.ErrOrStderr()),
		)
	}

	var eventObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		eventObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	return execshell.NewShellExecutor(logger, commandRunner, eventObserver)
}
