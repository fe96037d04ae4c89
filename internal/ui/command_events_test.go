package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/fleet/internal/execshell"
	"github.com/temirov/fleet/internal/ui"
)

const (
	testCommandNameConstant      = "git"
	testCommandArgumentConstant  = "status"
	testWorkingDirectoryConstant = "/workspace/foo"
)

func newTestCommand() execshell.ShellCommand {
	return execshell.ShellCommand{
		Name: execshell.CommandName(testCommandNameConstant),
		Details: execshell.CommandDetails{
			Arguments:        []string{testCommandArgumentConstant},
			WorkingDirectory: testWorkingDirectoryConstant,
		},
	}
}

func TestCommandEventFormatterMessages(testInstance *testing.T) {
	formatter := ui.CommandEventFormatter{}
	command := newTestCommand()

	testCases := []struct {
		name            string
		builtMessage    string
		expectedMessage string
	}{
		{
			name:            "started_message",
			builtMessage:    formatter.BuildStartedMessage(command),
			expectedMessage: "Running git status (in /workspace/foo)",
		},
		{
			name:            "success_message",
			builtMessage:    formatter.BuildSuccessMessage(command),
			expectedMessage: "Completed git status (in /workspace/foo)",
		},
		{
			name:            "failure_message",
			builtMessage:    formatter.BuildFailureMessage(command, execshell.ExecutionResult{ExitCode: 2}),
			expectedMessage: "git status (in /workspace/foo) failed with exit code 2",
		},
		{
			name:            "execution_failure_message",
			builtMessage:    formatter.BuildExecutionFailureMessage(command, errors.New("not found")),
			expectedMessage: "git status (in /workspace/foo) failed: not found",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.builtMessage)
		})
	}
}

func TestConsoleCommandEventLoggerLevels(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zap.DebugLevel)
	eventLogger := ui.NewConsoleCommandEventLogger(zap.New(observerCore))
	command := newTestCommand()

	eventLogger.CommandStarted(command)
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 0})
	eventLogger.CommandCompleted(command, execshell.ExecutionResult{ExitCode: 5})
	eventLogger.CommandExecutionFailed(command, errors.New("spawn failure"))

	recordedEntries := observedLogs.All()
	require.Len(testInstance, recordedEntries, 4)
	require.Equal(testInstance, zapcore.InfoLevel, recordedEntries[0].Level)
	require.Equal(testInstance, zapcore.InfoLevel, recordedEntries[1].Level)
	require.Equal(testInstance, zapcore.WarnLevel, recordedEntries[2].Level)
	require.Equal(testInstance, zapcore.ErrorLevel, recordedEntries[3].Level)
}
