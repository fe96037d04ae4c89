// Package manifest models the declarative description of every repository a
// fleet workspace knows about.
//
// It exposes Repository and Group value types, a Manifest aggregate preserving
// declaration order, and Load/Parse helpers that read the YAML manifest file.
package manifest
