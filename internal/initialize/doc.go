// Package initialize records workspace configuration for a directory tree.
//
// It validates the referenced manifest and the requested default groups, then
// persists the workspace configuration under the hidden marker directory.
// Cloning repositories is out of scope; fleet only ever records which
// manifest and groups a workspace uses.
package initialize
