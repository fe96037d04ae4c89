package manifest

import (
	"fmt"
	"strings"
)

const (
	repositoryNameMissingMessageConstant      = "manifest repository entry is missing a name"
	repositoryPathTemplateMissingNameConstant = "manifest repository %s is missing a path"
	duplicateRepositoryTemplateConstant       = "manifest declares repository %s more than once"
	unknownGroupMemberTemplateConstant        = "manifest group %s references unknown repository %s"
)

// Repository describes a single repository declared by the manifest.
type Repository struct {
	Name   string
	Path   string
	URL    string
	Branch string
}

// Group names an ordered collection of repository names.
type Group struct {
	Name    string
	Members []string
}

// Manifest aggregates repositories and groups in declaration order.
type Manifest struct {
	repositories       []Repository
	repositoriesByName map[string]Repository
	groups             []Group
	groupsByName       map[string]Group
}

// NewManifest constructs a validated Manifest from repositories and groups.
func NewManifest(repositories []Repository, groups []Group) (*Manifest, error) {
	repositoriesByName := make(map[string]Repository, len(repositories))
	orderedRepositories := make([]Repository, 0, len(repositories))
	for repositoryIndex := range repositories {
		repository := repositories[repositoryIndex]
		trimmedName := strings.TrimSpace(repository.Name)
		if len(trimmedName) == 0 {
			return nil, fmt.Errorf(repositoryNameMissingMessageConstant)
		}
		if _, alreadyDeclared := repositoriesByName[trimmedName]; alreadyDeclared {
			return nil, fmt.Errorf(duplicateRepositoryTemplateConstant, trimmedName)
		}
		repository.Name = trimmedName
		if len(strings.TrimSpace(repository.Path)) == 0 {
			return nil, fmt.Errorf(repositoryPathTemplateMissingNameConstant, trimmedName)
		}
		repositoriesByName[trimmedName] = repository
		orderedRepositories = append(orderedRepositories, repository)
	}

	groupsByName := make(map[string]Group, len(groups))
	orderedGroups := make([]Group, 0, len(groups))
	for groupIndex := range groups {
		group := groups[groupIndex]
		for _, memberName := range group.Members {
			if _, memberKnown := repositoriesByName[memberName]; !memberKnown {
				return nil, fmt.Errorf(unknownGroupMemberTemplateConstant, group.Name, memberName)
			}
		}
		groupsByName[group.Name] = group
		orderedGroups = append(orderedGroups, group)
	}

	return &Manifest{
		repositories:       orderedRepositories,
		repositoriesByName: repositoriesByName,
		groups:             orderedGroups,
		groupsByName:       groupsByName,
	}, nil
}

// AllRepositories returns every repository in manifest declaration order.
func (manifest *Manifest) AllRepositories() []Repository {
	return append([]Repository{}, manifest.repositories...)
}

// Groups returns every group in manifest declaration order.
func (manifest *Manifest) Groups() []Group {
	return append([]Group{}, manifest.groups...)
}

// LookupRepository resolves a repository by name.
func (manifest *Manifest) LookupRepository(repositoryName string) (Repository, bool) {
	repository, repositoryKnown := manifest.repositoriesByName[repositoryName]
	return repository, repositoryKnown
}

// LookupGroup resolves a group by name.
func (manifest *Manifest) LookupGroup(groupName string) (Group, bool) {
	group, groupKnown := manifest.groupsByName[groupName]
	return group, groupKnown
}

// UnknownGroupNames returns the requested names that the manifest does not declare.
func (manifest *Manifest) UnknownGroupNames(requestedGroupNames []string) []string {
	unknownNames := make([]string, 0)
	for _, requestedGroupName := range requestedGroupNames {
		if _, groupKnown := manifest.groupsByName[requestedGroupName]; !groupKnown {
			unknownNames = append(unknownNames, requestedGroupName)
		}
	}
	return unknownNames
}

// RepositoriesInGroups returns the union of the named groups' members in
// manifest declaration order with duplicates removed. Every supplied name must
// exist in the manifest.
func (manifest *Manifest) RepositoriesInGroups(groupNames []string) []Repository {
	selectedNames := make(map[string]struct{})
	for _, groupName := range groupNames {
		group, groupKnown := manifest.groupsByName[groupName]
		if !groupKnown {
			continue
		}
		for _, memberName := range group.Members {
			selectedNames[memberName] = struct{}{}
		}
	}

	selectedRepositories := make([]Repository, 0, len(selectedNames))
	for repositoryIndex := range manifest.repositories {
		repository := manifest.repositories[repositoryIndex]
		if _, selected := selectedNames[repository.Name]; selected {
			selectedRepositories = append(selectedRepositories, repository)
		}
	}
	return selectedRepositories
}
