// Package types defines the data model shared by the action execution engine.
//
// An ActionDescriptor is the engine's input unit: a backend tag plus the raw
// command text stored in the catalog. Every execution, whatever the backend,
// ends as an ExecutionResult. The remaining types (ValidationResult,
// PrivilegeRequirement) are intermediate decisions taken before any side
// effect happens.
//
// None of these values carry state across calls. They are created, inspected
// and discarded within a single Execute or Validate call.
package types
