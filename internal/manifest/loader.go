package manifest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestReadErrorTemplateConstant   = "unable to read manifest %s: %w"
	manifestParseErrorTemplateConstant  = "unable to parse manifest: %w"
	manifestGroupsNodeKindErrorConstant = "manifest groups section must be a mapping"
)

type repositoryDocument struct {
	Name   string `yaml:"name"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
	Branch string `yaml:"branch"`
}

type groupDocument struct {
	Repositories []string `yaml:"repos"`
}

type manifestDocument struct {
	Repositories []repositoryDocument `yaml:"repos"`
	Groups       yaml.Node            `yaml:"groups"`
}

// Load reads and parses the manifest file at the provided path.
func Load(manifestPath string) (*Manifest, error) {
	manifestContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		return nil, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}
	return Parse(manifestContent)
}

// Parse decodes manifest YAML content preserving declaration order.
func Parse(manifestContent []byte) (*Manifest, error) {
	var document manifestDocument
	if unmarshalError := yaml.Unmarshal(manifestContent, &document); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}

	repositories := make([]Repository, 0, len(document.Repositories))
	for documentIndex := range document.Repositories {
		repositoryEntry := document.Repositories[documentIndex]
		repositories = append(repositories, Repository{
			Name:   repositoryEntry.Name,
			Path:   repositoryEntry.Path,
			URL:    repositoryEntry.URL,
			Branch: repositoryEntry.Branch,
		})
	}

	groups, groupsError := decodeGroups(document.Groups)
	if groupsError != nil {
		return nil, groupsError
	}

	return NewManifest(repositories, groups)
}

// decodeGroups walks the raw groups node so group declaration order survives
// decoding; yaml.v3 map decoding would otherwise lose it.
func decodeGroups(groupsNode yaml.Node) ([]Group, error) {
	if groupsNode.Kind == 0 || groupsNode.IsZero() {
		return nil, nil
	}
	if groupsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf(manifestGroupsNodeKindErrorConstant)
	}

	groups := make([]Group, 0, len(groupsNode.Content)/2)
	for contentIndex := 0; contentIndex+1 < len(groupsNode.Content); contentIndex += 2 {
		keyNode := groupsNode.Content[contentIndex]
		valueNode := groupsNode.Content[contentIndex+1]

		var groupEntry groupDocument
		if decodeError := valueNode.Decode(&groupEntry); decodeError != nil {
			return nil, fmt.Errorf(manifestParseErrorTemplateConstant, decodeError)
		}

		groups = append(groups, Group{
			Name:    keyNode.Value,
			Members: groupEntry.Repositories,
		})
	}

	return groups, nil
}
