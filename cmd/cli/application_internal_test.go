package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fleet/internal/workspace"
)

const applicationTestManifestContentConstant = `
repos:
  - name: foo
    path: foo
  - name: bar
    path: bar
groups:
  dev:
    repos: [foo, bar]
`

func newApplicationTestWorkspace(testInstance *testing.T) string {
	testInstance.Helper()
	rootDirectory := testInstance.TempDir()

	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "manifest.yaml"), []byte(applicationTestManifestContentConstant), 0o644))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "foo"), 0o755))
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "bar"), 0o755))

	testWorkspace := workspace.NewWorkspace(rootDirectory, nil)
	require.NoError(testInstance, testWorkspace.SaveConfiguration(workspace.Configuration{
		ManifestPath:  "manifest.yaml",
		DefaultGroups: []string{"dev"},
	}))

	return rootDirectory
}

func executeApplication(testInstance *testing.T, commandArguments []string) (*Application, string, error) {
	testInstance.Helper()
	application := NewApplication()

	var outputBuffer bytes.Buffer
	application.rootCommand.SetOut(&outputBuffer)
	application.rootCommand.SetErr(&outputBuffer)
	application.rootCommand.SetArgs(commandArguments)

	executionError := application.Execute()
	return application, outputBuffer.String(), executionError
}

func TestApplicationRunsForeachSubcommand(testInstance *testing.T) {
	rootDirectory := newApplicationTestWorkspace(testInstance)

	_, producedOutput, executionError := executeApplication(testInstance, []string{"foreach", "--workspace", rootDirectory, "--", "ls"})
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, producedOutput, "Running `ls` on 2 repo(s)")
	require.Contains(testInstance, producedOutput, "OK")
}

func TestApplicationRunsGroupsSubcommand(testInstance *testing.T) {
	rootDirectory := newApplicationTestWorkspace(testInstance)

	_, producedOutput, executionError := executeApplication(testInstance, []string{"groups", "--workspace", rootDirectory})
	require.NoError(testInstance, executionError)

	require.Contains(testInstance, producedOutput, "dev:")
	require.Contains(testInstance, producedOutput, "  - foo")
}

func TestApplicationLogFormatFlagEnablesHumanReadableLogging(testInstance *testing.T) {
	application, _, executionError := executeApplication(testInstance, []string{"--log-format", "console"})
	require.NoError(testInstance, executionError)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestApplicationRejectsUnsupportedLogLevel(testInstance *testing.T) {
	_, _, executionError := executeApplication(testInstance, []string{"--log-level", "bogus"})
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}

func TestApplicationEmbeddedDefaultsProvideLoggingConfiguration(testInstance *testing.T) {
	application, _, executionError := executeApplication(testInstance, nil)
	require.NoError(testInstance, executionError)

	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", application.configuration.Common.LogFormat)
	require.Equal(testInstance, "manifest.yaml", application.configuration.Tools.Initialize.ManifestPath)
}
