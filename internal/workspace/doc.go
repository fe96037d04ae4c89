// Package workspace manages the on-disk state of a fleet workspace.
//
// It locates the workspace root by walking parent directories, loads and
// persists the workspace configuration stored under the hidden .fleet
// directory, and reports which manifest repositories are present on disk.
package workspace
