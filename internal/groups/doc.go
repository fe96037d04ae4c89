// Package groups lists the manifest groups known to a fleet workspace.
package groups
