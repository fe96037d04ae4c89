// Package selection computes the ordered set of repositories a fleet command
// operates on.
//
// Resolve applies the selection precedence (all cloned repositories, explicit
// groups, workspace default groups) and guarantees a deduplicated target list
// in manifest declaration order. Selection failures surface as typed errors
// before any command executes.
package selection
