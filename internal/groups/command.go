package groups

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/fleet/internal/manifest"
	pathutils "github.com/temirov/fleet/internal/utils/path"
	"github.com/temirov/fleet/internal/workspace"
)

const (
	commandUseConstant   = "groups"
	commandShortConstant = "List manifest groups and their repositories"
	commandLongConstant  = "groups prints every group declared by the workspace manifest together with " +
		"its member repositories, marking repositories that are not cloned on disk."

	flagWorkspaceNameConstant      = "workspace"
	flagWorkspaceShorthandConstant = "w"
	flagWorkspaceUsageConstant     = "Path to the workspace root (defaults to searching parent directories)."

	groupHeaderTemplateConstant     = "%s:\n"
	groupMemberTemplateConstant     = "  - %s\n"
	notClonedMemberTemplateConstant = "  - %s (not cloned)\n"
	defaultGroupsTemplateConstant   = "Default groups: %s\n"
	noGroupsMessageConstant         = "The manifest declares no groups\n"
	defaultGroupsJoinSeparator      = ", "
)

// CommandBuilder assembles the groups cobra command.
type CommandBuilder struct {
	FileSystem workspace.FileSystem
}

// Build constructs the cobra command for group listing.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortConstant,
		Long:  commandLongConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().StringP(flagWorkspaceNameConstant, flagWorkspaceShorthandConstant, "", flagWorkspaceUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	workspacePath, _ := command.Flags().GetString(flagWorkspaceNameConstant)

	startDirectory := pathutils.NewHomeExpander().Expand(workspacePath)
	if len(startDirectory) == 0 {
		workingDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return workingDirectoryError
		}
		startDirectory = workingDirectory
	}

	targetWorkspace, workspaceError := workspace.Locate(startDirectory, builder.FileSystem)
	if workspaceError != nil {
		return workspaceError
	}

	configuration, configurationError := targetWorkspace.LoadConfiguration()
	if configurationError != nil {
		return configurationError
	}

	workspaceManifest, manifestError := targetWorkspace.LoadManifest(configuration)
	if manifestError != nil {
		return manifestError
	}

	writeGroupListing(command.OutOrStdout(), workspaceManifest, targetWorkspace, configuration)
	return nil
}

func writeGroupListing(outputWriter io.Writer, workspaceManifest *manifest.Manifest, targetWorkspace *workspace.Workspace, configuration workspace.Configuration) {
	manifestGroups := workspaceManifest.Groups()
	if len(manifestGroups) == 0 {
		fmt.Fprint(outputWriter, noGroupsMessageConstant)
		return
	}

	for _, manifestGroup := range manifestGroups {
		fmt.Fprintf(outputWriter, groupHeaderTemplateConstant, manifestGroup.Name)
		for _, memberName := range manifestGroup.Members {
			memberRepository, memberKnown := workspaceManifest.LookupRepository(memberName)
			if memberKnown && targetWorkspace.IsCloned(memberRepository) {
				fmt.Fprintf(outputWriter, groupMemberTemplateConstant, memberName)
				continue
			}
			fmt.Fprintf(outputWriter, notClonedMemberTemplateConstant, memberName)
		}
	}

	if len(configuration.DefaultGroups) > 0 {
		fmt.Fprintf(outputWriter, defaultGroupsTemplateConstant, strings.Join(configuration.DefaultGroups, defaultGroupsJoinSeparator))
	}
}
