package manifest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/fleet/internal/manifest"
)

const (
	validManifestContentConstant = `
repos:
  - name: bar
    path: bar
    url: git@example.com:acme/bar.git
    branch: main
  - name: baz
    path: nested/baz
    url: git@example.com:acme/baz.git
  - name: eggs
    path: eggs
    url: git@example.com:acme/eggs.git
  - name: beacon
    path: beacon
    url: git@example.com:acme/beacon.git
  - name: other
    path: other
    url: git@example.com:acme/other.git
groups:
  foo:
    repos: [bar, baz]
  spam:
    repos: [eggs, beacon]
`
	duplicateRepositoryManifestContentConstant = `
repos:
  - name: bar
    path: bar
  - name: bar
    path: bar-copy
`
	unknownMemberManifestContentConstant = `
repos:
  - name: bar
    path: bar
groups:
  foo:
    repos: [bar, missing]
`
	overlappingGroupsManifestContentConstant = `
repos:
  - name: alpha
    path: alpha
  - name: beta
    path: beta
  - name: gamma
    path: gamma
groups:
  first:
    repos: [beta, alpha]
  second:
    repos: [alpha, gamma]
`
)

func TestParseValidManifest(testInstance *testing.T) {
	parsedManifest, parseError := manifest.Parse([]byte(validManifestContentConstant))
	require.NoError(testInstance, parseError)

	repositories := parsedManifest.AllRepositories()
	repositoryNames := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		repositoryNames = append(repositoryNames, repository.Name)
	}
	require.Equal(testInstance, []string{"bar", "baz", "eggs", "beacon", "other"}, repositoryNames)

	groups := parsedManifest.Groups()
	require.Len(testInstance, groups, 2)
	require.Equal(testInstance, "foo", groups[0].Name)
	require.Equal(testInstance, []string{"bar", "baz"}, groups[0].Members)
	require.Equal(testInstance, "spam", groups[1].Name)

	barRepository, barKnown := parsedManifest.LookupRepository("bar")
	require.True(testInstance, barKnown)
	require.Equal(testInstance, "main", barRepository.Branch)
	require.Equal(testInstance, "git@example.com:acme/bar.git", barRepository.URL)

	bazRepository, bazKnown := parsedManifest.LookupRepository("baz")
	require.True(testInstance, bazKnown)
	require.Equal(testInstance, "nested/baz", bazRepository.Path)
}

func TestParseRejectsInvalidManifests(testInstance *testing.T) {
	testCases := []struct {
		name            string
		manifestContent string
	}{
		{name: "duplicate_repository", manifestContent: duplicateRepositoryManifestContentConstant},
		{name: "unknown_group_member", manifestContent: unknownMemberManifestContentConstant},
		{name: "malformed_yaml", manifestContent: "repos: ["},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedManifest, parseError := manifest.Parse([]byte(testCase.manifestContent))
			require.Error(testInstance, parseError)
			require.Nil(testInstance, parsedManifest)
		})
	}
}

func TestRepositoriesInGroupsFollowsManifestOrder(testInstance *testing.T) {
	parsedManifest, parseError := manifest.Parse([]byte(overlappingGroupsManifestContentConstant))
	require.NoError(testInstance, parseError)

	testCases := []struct {
		name          string
		groupNames    []string
		expectedNames []string
	}{
		{name: "single_group_manifest_order", groupNames: []string{"first"}, expectedNames: []string{"alpha", "beta"}},
		{name: "overlapping_groups_deduplicated", groupNames: []string{"first", "second"}, expectedNames: []string{"alpha", "beta", "gamma"}},
		{name: "selection_order_irrelevant", groupNames: []string{"second", "first"}, expectedNames: []string{"alpha", "beta", "gamma"}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			selectedRepositories := parsedManifest.RepositoriesInGroups(testCase.groupNames)
			selectedNames := make([]string, 0, len(selectedRepositories))
			for _, repository := range selectedRepositories {
				selectedNames = append(selectedNames, repository.Name)
			}
			require.Equal(testInstance, testCase.expectedNames, selectedNames)
		})
	}
}

func TestUnknownGroupNames(testInstance *testing.T) {
	parsedManifest, parseError := manifest.Parse([]byte(validManifestContentConstant))
	require.NoError(testInstance, parseError)

	unknownNames := parsedManifest.UnknownGroupNames([]string{"foo", "missing", "spam", "absent"})
	require.Equal(testInstance, []string{"missing", "absent"}, unknownNames)

	require.Empty(testInstance, parsedManifest.UnknownGroupNames([]string{"foo", "spam"}))
}
