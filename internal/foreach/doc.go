// Package foreach runs one ad-hoc command across the selected workspace
// repositories.
//
// It defines the CommandSpec tagged union (argv vector or shell line), the
// sequential Service that visits every target repository while collecting
// per-repository outcomes, the Summarize aggregation that turns outcomes into
// an overall verdict, and CommandBuilder for the fleet foreach Cobra command.
package foreach
