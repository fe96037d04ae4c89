package foreach_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fleet/internal/execshell"
	"github.com/temirov/fleet/internal/foreach"
	"github.com/temirov/fleet/internal/manifest"
	"github.com/temirov/fleet/internal/workspace"
)

type scriptedCommandExecutor struct {
	exitCodesByDirectory map[string]int
	startError           error
	executedDirectories  []string
	cancelAfterFirstCall context.CancelFunc
}

func (executor *scriptedCommandExecutor) ExecuteCommand(executionContext context.Context, command execshell.ShellCommand) (execshell.ExecutionResult, error) {
	executor.executedDirectories = append(executor.executedDirectories, command.Details.WorkingDirectory)
	if executor.cancelAfterFirstCall != nil {
		executor.cancelAfterFirstCall()
	}
	if executor.startError != nil {
		return execshell.ExecutionResult{}, executor.startError
	}
	return execshell.ExecutionResult{ExitCode: executor.exitCodesByDirectory[filepath.Base(command.Details.WorkingDirectory)]}, nil
}

func newServiceTestWorkspace(testInstance *testing.T, clonedRepositoryNames ...string) *workspace.Workspace {
	testInstance.Helper()
	rootDirectory := testInstance.TempDir()
	for _, repositoryName := range clonedRepositoryNames {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, repositoryName), 0o755))
	}
	return workspace.NewWorkspace(rootDirectory, nil)
}

func namedRepositories(repositoryNames ...string) []manifest.Repository {
	repositories := make([]manifest.Repository, 0, len(repositoryNames))
	for _, repositoryName := range repositoryNames {
		repositories = append(repositories, manifest.Repository{Name: repositoryName, Path: repositoryName})
	}
	return repositories
}

func TestServiceRunKeepsGoingPastFailures(testInstance *testing.T) {
	testWorkspace := newServiceTestWorkspace(testInstance, "foo", "bar", "baz")
	commandExecutor := &scriptedCommandExecutor{exitCodesByDirectory: map[string]int{"foo": 0, "bar": 1, "baz": 0}}
	var outputBuffer bytes.Buffer
	service := foreach.NewService(commandExecutor, testWorkspace, &outputBuffer, &outputBuffer)

	specification, specificationError := foreach.NewArgvCommand([]string{"ls", "stuff.txt"})
	require.NoError(testInstance, specificationError)

	outcomes, runError := service.Run(context.Background(), namedRepositories("foo", "bar", "baz"), specification)
	require.NoError(testInstance, runError)
	require.Len(testInstance, outcomes, 3)
	require.Len(testInstance, commandExecutor.executedDirectories, 3)

	overallResult := foreach.Summarize(outcomes)
	require.Equal(testInstance, []string{"bar"}, overallResult.FailedRepositoryNames)
}

func TestServiceRunVisitsTargetsInOrder(testInstance *testing.T) {
	testWorkspace := newServiceTestWorkspace(testInstance, "foo", "spam")
	commandExecutor := &scriptedCommandExecutor{}
	var outputBuffer bytes.Buffer
	service := foreach.NewService(commandExecutor, testWorkspace, &outputBuffer, &outputBuffer)

	specification, specificationError := foreach.NewArgvCommand([]string{"ls"})
	require.NoError(testInstance, specificationError)

	outcomes, runError := service.Run(context.Background(), namedRepositories("foo", "spam"), specification)
	require.NoError(testInstance, runError)
	require.Len(testInstance, outcomes, 2)

	expectedDirectories := []string{
		testWorkspace.RepositoryPath(manifest.Repository{Name: "foo", Path: "foo"}),
		testWorkspace.RepositoryPath(manifest.Repository{Name: "spam", Path: "spam"}),
	}
	require.Equal(testInstance, expectedDirectories, commandExecutor.executedDirectories)

	producedOutput := outputBuffer.String()
	require.Contains(testInstance, producedOutput, "Running `ls` on 2 repo(s)")
	require.Contains(testInstance, producedOutput, "* (1/2) foo")
	require.Contains(testInstance, producedOutput, "* (2/2) spam")
	require.Equal(testInstance, 2, strings.Count(producedOutput, "$ ls\n"))
}

func TestServiceRunRecordsMissingRepositoryAsFailure(testInstance *testing.T) {
	testWorkspace := newServiceTestWorkspace(testInstance, "foo")
	commandExecutor := &scriptedCommandExecutor{}
	var outputBuffer bytes.Buffer
	var errorBuffer bytes.Buffer
	service := foreach.NewService(commandExecutor, testWorkspace, &outputBuffer, &errorBuffer)

	specification, specificationError := foreach.NewArgvCommand([]string{"ls"})
	require.NoError(testInstance, specificationError)

	outcomes, runError := service.Run(context.Background(), namedRepositories("foo", "ghost"), specification)
	require.NoError(testInstance, runError)
	require.Len(testInstance, outcomes, 2)
	require.ErrorIs(testInstance, outcomes[1].StartError, foreach.ErrRepositoryNotCloned)
	require.Contains(testInstance, errorBuffer.String(), "ghost: not cloned")

	// The command never runs for the missing repository.
	require.Len(testInstance, commandExecutor.executedDirectories, 1)
	require.Equal(testInstance, []string{"ghost"}, foreach.Summarize(outcomes).FailedRepositoryNames)
}

func TestServiceRunRecordsStartFailures(testInstance *testing.T) {
	testWorkspace := newServiceTestWorkspace(testInstance, "foo", "bar")
	commandExecutor := &scriptedCommandExecutor{startError: os.ErrNotExist}
	var outputBuffer bytes.Buffer
	service := foreach.NewService(commandExecutor, testWorkspace, &outputBuffer, &outputBuffer)

	specification, specificationError := foreach.NewArgvCommand([]string{"fleet-test-missing-binary"})
	require.NoError(testInstance, specificationError)

	outcomes, runError := service.Run(context.Background(), namedRepositories("foo", "bar"), specification)
	require.NoError(testInstance, runError)
	require.Len(testInstance, outcomes, 2)
	require.Equal(testInstance, []string{"foo", "bar"}, foreach.Summarize(outcomes).FailedRepositoryNames)
}

func TestServiceRunStopsOnCancellation(testInstance *testing.T) {
	testWorkspace := newServiceTestWorkspace(testInstance, "foo", "bar", "baz")
	executionContext, cancelExecution := context.WithCancel(context.Background())
	commandExecutor := &scriptedCommandExecutor{cancelAfterFirstCall: cancelExecution}
	var outputBuffer bytes.Buffer
	service := foreach.NewService(commandExecutor, testWorkspace, &outputBuffer, &outputBuffer)

	specification, specificationError := foreach.NewArgvCommand([]string{"sleep", "60"})
	require.NoError(testInstance, specificationError)

	outcomes, runError := service.Run(executionContext, namedRepositories("foo", "bar", "baz"), specification)
	require.ErrorIs(testInstance, runError, context.Canceled)
	require.Len(testInstance, outcomes, 1)
	require.Len(testInstance, commandExecutor.executedDirectories, 1)
}
