package selection

import (
	"errors"
	"fmt"
	"strings"
)

const (
	noSelectionMessageConstant           = "no group requested, no workspace default groups recorded, and --all-cloned not set; pass --group or --all-cloned"
	conflictingSelectionMessageConstant  = "--group and --all-cloned are mutually exclusive"
	unknownGroupsMessageTemplateConstant = "unknown group(s): %s"
	unknownGroupsJoinSeparatorConstant   = ", "
)

// ErrNoSelection indicates the caller provided no way to determine target repositories.
var ErrNoSelection = errors.New(noSelectionMessageConstant)

// ErrConflictingSelection indicates explicit groups and all-cloned were combined.
var ErrConflictingSelection = errors.New(conflictingSelectionMessageConstant)

// UnknownGroupsError reports every requested group name absent from the manifest.
type UnknownGroupsError struct {
	GroupNames []string
}

// Error implements the error interface.
func (unknownGroupsError UnknownGroupsError) Error() string {
	return fmt.Sprintf(unknownGroupsMessageTemplateConstant, strings.Join(unknownGroupsError.GroupNames, unknownGroupsJoinSeparatorConstant))
}
