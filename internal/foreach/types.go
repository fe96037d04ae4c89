package foreach

import (
	"errors"
	"strings"

	"github.com/temirov/fleet/internal/execshell"
	"github.com/temirov/fleet/internal/manifest"
)

const (
	emptyArgvCommandMessageConstant  = "foreach requires a command to run"
	emptyShellLineMessageConstant    = "foreach --shell requires exactly one command string"
	shellExecutableNameConstant      = "sh"
	shellCommandFlagConstant         = "-c"
	argvDisplayJoinSeparatorConstant = " "
)

// Validation errors for command specifications.
var (
	ErrEmptyArgvCommand = errors.New(emptyArgvCommandMessageConstant)
	ErrEmptyShellLine   = errors.New(emptyShellLineMessageConstant)
)

// CommandSpec describes the command to run in each repository. Exactly one of
// the two variants (argv vector or shell line) is active.
type CommandSpec struct {
	argvArguments []string
	shellLine     string
}

// NewArgvCommand builds a specification executed directly without shell interpretation.
func NewArgvCommand(arguments []string) (CommandSpec, error) {
	if len(arguments) == 0 {
		return CommandSpec{}, ErrEmptyArgvCommand
	}
	return CommandSpec{argvArguments: append([]string{}, arguments...)}, nil
}

// NewShellCommand builds a specification interpreted by the platform shell.
func NewShellCommand(shellLine string) (CommandSpec, error) {
	if len(strings.TrimSpace(shellLine)) == 0 {
		return CommandSpec{}, ErrEmptyShellLine
	}
	return CommandSpec{shellLine: shellLine}, nil
}

// IsShell reports whether the shell variant is active.
func (specification CommandSpec) IsShell() bool {
	return len(specification.shellLine) > 0
}

// Display renders the command text the way the operator supplied it.
func (specification CommandSpec) Display() string {
	if specification.IsShell() {
		return specification.shellLine
	}
	return strings.Join(specification.argvArguments, argvDisplayJoinSeparatorConstant)
}

// shellCommand materializes the specification for execution inside workingDirectory.
func (specification CommandSpec) shellCommand(workingDirectory string) execshell.ShellCommand {
	if specification.IsShell() {
		return execshell.ShellCommand{
			Name: execshell.CommandName(shellExecutableNameConstant),
			Details: execshell.CommandDetails{
				Arguments:        []string{shellCommandFlagConstant, specification.shellLine},
				WorkingDirectory: workingDirectory,
			},
		}
	}
	return execshell.ShellCommand{
		Name: execshell.CommandName(specification.argvArguments[0]),
		Details: execshell.CommandDetails{
			Arguments:        append([]string{}, specification.argvArguments[1:]...),
			WorkingDirectory: workingDirectory,
		},
	}
}

// ExecutionOutcome records the result of running the command in one repository.
type ExecutionOutcome struct {
	Repository manifest.Repository
	ExitCode   int
	StartError error
}

// Failed reports whether the repository counts against the overall verdict.
func (outcome ExecutionOutcome) Failed() bool {
	return outcome.StartError != nil || outcome.ExitCode != 0
}

// OverallResult is the aggregate verdict across every visited repository.
type OverallResult struct {
	FailedRepositoryNames []string
}

// Success reports whether every repository completed with a zero exit code.
func (result OverallResult) Success() bool {
	return len(result.FailedRepositoryNames) == 0
}

// Summarize partitions outcomes into the aggregate verdict.
func Summarize(outcomes []ExecutionOutcome) OverallResult {
	failedRepositoryNames := make([]string, 0)
	for _, outcome := range outcomes {
		if outcome.Failed() {
			failedRepositoryNames = append(failedRepositoryNames, outcome.Repository.Name)
		}
	}
	return OverallResult{FailedRepositoryNames: failedRepositoryNames}
}
