package foreach

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/fleet/internal/execshell"
	"github.com/temirov/fleet/internal/manifest"
	"github.com/temirov/fleet/internal/workspace"
)

const (
	repositoryNotClonedMessageConstant = "repository is not cloned"
	commandFailedMessageConstant       = "command failed"

	runHeaderTemplateConstant           = "Running `%s` on %d repo(s)\n"
	repositoryAnnounceTemplateConstant  = "* (%d/%d) %s\n"
	commandLineTemplateConstant         = "$ %s\n"
	repositoryNotClonedTemplateConstant = "%s: not cloned\n"
	successReportConstant               = "OK\n"
	failureReportHeaderTemplateConstant = "Command failed for %d repo(s)\n"
	failureReportEntryTemplateConstant  = "* %s\n"
)

// ErrRepositoryNotCloned marks outcomes whose repository directory was absent.
var ErrRepositoryNotCloned = errors.New(repositoryNotClonedMessageConstant)

// ErrCommandFailed is the aggregate error returned when any repository failed.
var ErrCommandFailed = errors.New(commandFailedMessageConstant)

// CommandExecutor runs a single shell command and reports its exit status.
type CommandExecutor interface {
	ExecuteCommand(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error)
}

// Service visits every target repository sequentially and records the outcome
// of running the requested command in each of them.
type Service struct {
	commandExecutor CommandExecutor
	targetWorkspace *workspace.Workspace
	outputWriter    io.Writer
	errorWriter     io.Writer
}

// NewService constructs a Service using the provided collaborators.
func NewService(commandExecutor CommandExecutor, targetWorkspace *workspace.Workspace, outputWriter io.Writer, errorWriter io.Writer) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if errorWriter == nil {
		errorWriter = io.Discard
	}
	return &Service{
		commandExecutor: commandExecutor,
		targetWorkspace: targetWorkspace,
		outputWriter:    outputWriter,
		errorWriter:     errorWriter,
	}
}

// Run executes the command once per target repository, strictly sequentially
// and in target order. A failing repository never stops the run; cancellation
// aborts the remaining plan while the outcomes recorded so far are returned.
func (service *Service) Run(executionContext context.Context, targetRepositories []manifest.Repository, specification CommandSpec) ([]ExecutionOutcome, error) {
	fmt.Fprintf(service.outputWriter, runHeaderTemplateConstant, specification.Display(), len(targetRepositories))

	outcomes := make([]ExecutionOutcome, 0, len(targetRepositories))
	for repositoryIndex, repository := range targetRepositories {
		if contextError := executionContext.Err(); contextError != nil {
			return outcomes, contextError
		}

		fmt.Fprintf(service.outputWriter, repositoryAnnounceTemplateConstant, repositoryIndex+1, len(targetRepositories), repository.Name)

		if !service.targetWorkspace.IsCloned(repository) {
			fmt.Fprintf(service.errorWriter, repositoryNotClonedTemplateConstant, repository.Name)
			outcomes = append(outcomes, ExecutionOutcome{Repository: repository, StartError: ErrRepositoryNotCloned})
			continue
		}

		fmt.Fprintf(service.outputWriter, commandLineTemplateConstant, specification.Display())

		executionResult, executionError := service.commandExecutor.ExecuteCommand(executionContext, specification.shellCommand(service.targetWorkspace.RepositoryPath(repository)))
		if executionError != nil {
			if contextError := executionContext.Err(); contextError != nil {
				return outcomes, contextError
			}
			outcomes = append(outcomes, ExecutionOutcome{Repository: repository, StartError: executionError})
			continue
		}

		outcomes = append(outcomes, ExecutionOutcome{Repository: repository, ExitCode: executionResult.ExitCode})
	}

	return outcomes, nil
}

// WriteReport prints the consolidated verdict for a finished run.
func WriteReport(reportWriter io.Writer, result OverallResult) {
	if result.Success() {
		fmt.Fprint(reportWriter, successReportConstant)
		return
	}

	fmt.Fprintf(reportWriter, failureReportHeaderTemplateConstant, len(result.FailedRepositoryNames))
	for _, failedRepositoryName := range result.FailedRepositoryNames {
		fmt.Fprintf(reportWriter, failureReportEntryTemplateConstant, failedRepositoryName)
	}
}
