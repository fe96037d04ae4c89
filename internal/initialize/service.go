package initialize

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/temirov/fleet/internal/manifest"
	"github.com/temirov/fleet/internal/selection"
	"github.com/temirov/fleet/internal/workspace"
)

const (
	manifestPathRequiredMessageConstant    = "init requires a manifest path"
	workspaceInitializedTemplateConstant   = "Initialized workspace at %s using manifest %s\n"
	workspaceDefaultGroupsTemplateConstant = "Recorded default group(s): %s\n"
	defaultGroupsJoinSeparatorConstant     = ", "
)

// ErrManifestPathRequired indicates init was invoked without a manifest path.
var ErrManifestPathRequired = errors.New(manifestPathRequiredMessageConstant)

// Options captures the configurable parameters for workspace initialization.
type Options struct {
	RootPath      string
	ManifestPath  string
	DefaultGroups []string
}

// Service validates and persists workspace configuration.
type Service struct {
	fileSystem   workspace.FileSystem
	outputWriter io.Writer
}

// NewService constructs a Service using the provided collaborators.
func NewService(fileSystem workspace.FileSystem, outputWriter io.Writer) *Service {
	if fileSystem == nil {
		fileSystem = workspace.NewOSFileSystem()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{fileSystem: fileSystem, outputWriter: outputWriter}
}

// Run validates the manifest and requested groups, then records the workspace
// configuration beneath the root path.
func (service *Service) Run(options Options) error {
	if len(strings.TrimSpace(options.ManifestPath)) == 0 {
		return ErrManifestPathRequired
	}

	absoluteManifestPath, manifestPathError := service.fileSystem.Abs(options.ManifestPath)
	if manifestPathError != nil {
		return manifestPathError
	}

	workspaceManifest, manifestError := manifest.Load(absoluteManifestPath)
	if manifestError != nil {
		return manifestError
	}

	unknownGroupNames := workspaceManifest.UnknownGroupNames(options.DefaultGroups)
	if len(unknownGroupNames) > 0 {
		return selection.UnknownGroupsError{GroupNames: unknownGroupNames}
	}

	absoluteRootPath, rootPathError := service.fileSystem.Abs(options.RootPath)
	if rootPathError != nil {
		return rootPathError
	}

	targetWorkspace := workspace.NewWorkspace(absoluteRootPath, service.fileSystem)
	configuration := workspace.Configuration{
		ManifestPath:  relativeManifestPath(absoluteRootPath, absoluteManifestPath),
		DefaultGroups: options.DefaultGroups,
	}
	if saveError := targetWorkspace.SaveConfiguration(configuration); saveError != nil {
		return saveError
	}

	fmt.Fprintf(service.outputWriter, workspaceInitializedTemplateConstant, absoluteRootPath, configuration.ManifestPath)
	if len(options.DefaultGroups) > 0 {
		fmt.Fprintf(service.outputWriter, workspaceDefaultGroupsTemplateConstant, strings.Join(options.DefaultGroups, defaultGroupsJoinSeparatorConstant))
	}
	return nil
}

// relativeManifestPath stores the manifest path relative to the workspace root
// when it lives inside the workspace, keeping the configuration portable.
func relativeManifestPath(rootPath string, manifestPath string) string {
	relativePath, relativeError := filepath.Rel(rootPath, manifestPath)
	if relativeError != nil || strings.HasPrefix(relativePath, "..") {
		return manifestPath
	}
	return relativePath
}
