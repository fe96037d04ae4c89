package foreach_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fleet/internal/foreach"
	"github.com/temirov/fleet/internal/manifest"
)

func TestCommandSpecConstruction(testInstance *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		shellLine       string
		useShell        bool
		expectedError   error
		expectedDisplay string
		expectedIsShell bool
	}{
		{
			name:            "argv_command",
			arguments:       []string{"git", "status", "--short"},
			expectedDisplay: "git status --short",
		},
		{
			name:          "empty_argv_rejected",
			arguments:     nil,
			expectedError: foreach.ErrEmptyArgvCommand,
		},
		{
			name:            "shell_command",
			useShell:        true,
			shellLine:       "ls README*",
			expectedDisplay: "ls README*",
			expectedIsShell: true,
		},
		{
			name:          "blank_shell_line_rejected",
			useShell:      true,
			shellLine:     "   ",
			expectedError: foreach.ErrEmptyShellLine,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var specification foreach.CommandSpec
			var constructionError error
			if testCase.useShell {
				specification, constructionError = foreach.NewShellCommand(testCase.shellLine)
			} else {
				specification, constructionError = foreach.NewArgvCommand(testCase.arguments)
			}

			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, constructionError, testCase.expectedError)
				return
			}
			require.NoError(testInstance, constructionError)
			require.Equal(testInstance, testCase.expectedDisplay, specification.Display())
			require.Equal(testInstance, testCase.expectedIsShell, specification.IsShell())
		})
	}
}

func TestSummarizePartitionsOutcomes(testInstance *testing.T) {
	outcomes := []foreach.ExecutionOutcome{
		{Repository: manifest.Repository{Name: "foo"}, ExitCode: 0},
		{Repository: manifest.Repository{Name: "bar"}, ExitCode: 2},
		{Repository: manifest.Repository{Name: "baz"}, StartError: errors.New("spawn failed")},
		{Repository: manifest.Repository{Name: "eggs"}, ExitCode: 0},
	}

	overallResult := foreach.Summarize(outcomes)
	require.False(testInstance, overallResult.Success())
	require.Equal(testInstance, []string{"bar", "baz"}, overallResult.FailedRepositoryNames)

	require.True(testInstance, foreach.Summarize(nil).Success())
}

func TestWriteReportFormats(testInstance *testing.T) {
	testCases := []struct {
		name              string
		result            foreach.OverallResult
		expectedFragments []string
	}{
		{
			name:              "success_report",
			result:            foreach.OverallResult{},
			expectedFragments: []string{"OK\n"},
		},
		{
			name:              "failure_report_lists_every_repository",
			result:            foreach.OverallResult{FailedRepositoryNames: []string{"foo", "baz"}},
			expectedFragments: []string{"Command failed for 2 repo(s)\n", "* foo\n", "* baz\n"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var reportBuffer bytes.Buffer
			foreach.WriteReport(&reportBuffer, testCase.result)
			for _, expectedFragment := range testCase.expectedFragments {
				require.Contains(testInstance, reportBuffer.String(), expectedFragment)
			}
		})
	}
}
