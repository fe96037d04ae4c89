package selection

import (
	"github.com/temirov/fleet/internal/manifest"
	"github.com/temirov/fleet/internal/workspace"
)

// Request captures the selection flags supplied for one invocation.
type Request struct {
	Groups    []string
	AllCloned bool
}

// Resolve computes the target repository list for the request.
//
// Precedence: all cloned repositories, then explicitly requested groups, then
// the workspace's recorded default groups. Combining explicit groups with
// all-cloned is a configuration error, and resolving zero selection sources
// fails rather than falling back to every manifest repository.
func Resolve(workspaceManifest *manifest.Manifest, workspaceState workspace.State, request Request) ([]manifest.Repository, error) {
	if request.AllCloned && len(request.Groups) > 0 {
		return nil, ErrConflictingSelection
	}

	if request.AllCloned {
		return clonedRepositories(workspaceManifest, workspaceState), nil
	}

	if len(request.Groups) > 0 {
		return repositoriesForGroups(workspaceManifest, request.Groups)
	}

	if len(workspaceState.DefaultGroups) > 0 {
		return repositoriesForGroups(workspaceManifest, workspaceState.DefaultGroups)
	}

	return nil, ErrNoSelection
}

func clonedRepositories(workspaceManifest *manifest.Manifest, workspaceState workspace.State) []manifest.Repository {
	targetRepositories := make([]manifest.Repository, 0)
	for _, repository := range workspaceManifest.AllRepositories() {
		if workspaceState.IsRepositoryCloned(repository.Name) {
			targetRepositories = append(targetRepositories, repository)
		}
	}
	return targetRepositories
}

func repositoriesForGroups(workspaceManifest *manifest.Manifest, groupNames []string) ([]manifest.Repository, error) {
	unknownGroupNames := workspaceManifest.UnknownGroupNames(groupNames)
	if len(unknownGroupNames) > 0 {
		return nil, UnknownGroupsError{GroupNames: unknownGroupNames}
	}
	return workspaceManifest.RepositoriesInGroups(groupNames), nil
}
