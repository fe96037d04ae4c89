package workspace

import "github.com/temirov/fleet/internal/manifest"

// State is a read-only snapshot of workspace facts consumed by repository selection.
type State struct {
	DefaultGroups         []string
	clonedRepositoryNames map[string]struct{}
}

// NewState constructs a State from default groups and cloned repository names.
func NewState(defaultGroups []string, clonedRepositoryNames []string) State {
	clonedNameSet := make(map[string]struct{}, len(clonedRepositoryNames))
	for _, clonedRepositoryName := range clonedRepositoryNames {
		clonedNameSet[clonedRepositoryName] = struct{}{}
	}
	return State{
		DefaultGroups:         append([]string{}, defaultGroups...),
		clonedRepositoryNames: clonedNameSet,
	}
}

// Snapshot captures the current workspace state for the provided manifest.
func (workspace *Workspace) Snapshot(workspaceManifest *manifest.Manifest, configuration Configuration) State {
	clonedRepositoryNames := make([]string, 0)
	for _, repository := range workspaceManifest.AllRepositories() {
		if workspace.IsCloned(repository) {
			clonedRepositoryNames = append(clonedRepositoryNames, repository.Name)
		}
	}
	return NewState(configuration.DefaultGroups, clonedRepositoryNames)
}

// IsRepositoryCloned reports whether the named repository is present on disk.
func (state State) IsRepositoryCloned(repositoryName string) bool {
	_, repositoryCloned := state.clonedRepositoryNames[repositoryName]
	return repositoryCloned
}
