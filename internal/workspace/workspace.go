package workspace

import (
	"errors"
	"path/filepath"

	"github.com/temirov/fleet/internal/manifest"
)

const (
	// HiddenDirectoryNameConstant is the marker directory identifying a workspace root.
	HiddenDirectoryNameConstant = ".fleet"
	// ConfigurationFileNameConstant names the persisted workspace configuration file.
	ConfigurationFileNameConstant = "config.yaml"

	workspaceNotFoundMessageConstant = "could not find a fleet workspace; run fleet init first"
)

// ErrWorkspaceNotFound indicates no parent directory contains a workspace marker.
var ErrWorkspaceNotFound = errors.New(workspaceNotFoundMessageConstant)

// Workspace references a workspace root directory on disk.
type Workspace struct {
	RootPath   string
	fileSystem FileSystem
}

// NewWorkspace constructs a Workspace rooted at rootPath.
func NewWorkspace(rootPath string, fileSystem FileSystem) *Workspace {
	if fileSystem == nil {
		fileSystem = NewOSFileSystem()
	}
	return &Workspace{RootPath: rootPath, fileSystem: fileSystem}
}

// Locate walks up from startDirectory until a directory containing the
// workspace marker is found.
func Locate(startDirectory string, fileSystem FileSystem) (*Workspace, error) {
	if fileSystem == nil {
		fileSystem = NewOSFileSystem()
	}

	absoluteStart, absoluteError := fileSystem.Abs(startDirectory)
	if absoluteError != nil {
		return nil, absoluteError
	}

	currentDirectory := absoluteStart
	for {
		markerPath := filepath.Join(currentDirectory, HiddenDirectoryNameConstant)
		markerInformation, statError := fileSystem.Stat(markerPath)
		if statError == nil && markerInformation.IsDir() {
			return NewWorkspace(currentDirectory, fileSystem), nil
		}

		parentDirectory := filepath.Dir(currentDirectory)
		if parentDirectory == currentDirectory {
			return nil, ErrWorkspaceNotFound
		}
		currentDirectory = parentDirectory
	}
}

// HiddenDirectoryPath returns the absolute path of the workspace marker directory.
func (workspace *Workspace) HiddenDirectoryPath() string {
	return filepath.Join(workspace.RootPath, HiddenDirectoryNameConstant)
}

// ConfigurationPath returns the absolute path of the persisted configuration file.
func (workspace *Workspace) ConfigurationPath() string {
	return filepath.Join(workspace.HiddenDirectoryPath(), ConfigurationFileNameConstant)
}

// RepositoryPath resolves a manifest repository path relative to the workspace root.
func (workspace *Workspace) RepositoryPath(repository manifest.Repository) string {
	return filepath.Join(workspace.RootPath, filepath.FromSlash(repository.Path))
}

// LoadManifest reads the manifest referenced by the workspace configuration,
// resolving relative manifest paths against the workspace root.
func (workspace *Workspace) LoadManifest(configuration Configuration) (*manifest.Manifest, error) {
	manifestPath := configuration.ManifestPath
	if !filepath.IsAbs(manifestPath) {
		manifestPath = filepath.Join(workspace.RootPath, manifestPath)
	}
	return manifest.Load(manifestPath)
}

// IsCloned reports whether the repository directory exists under the workspace root.
func (workspace *Workspace) IsCloned(repository manifest.Repository) bool {
	repositoryInformation, statError := workspace.fileSystem.Stat(workspace.RepositoryPath(repository))
	if statError != nil {
		return false
	}
	return repositoryInformation.IsDir()
}
