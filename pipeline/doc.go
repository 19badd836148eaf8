// Package pipeline wires spatial, structure, cluster, mesh, burgers and
// grain into spec.md §6's single end-to-end entry point: Analyze takes a
// context, positions, a simulation cell, a *dxalog.Logger and Option
// values, and returns a Result or a fatal *dxaerr.Error.
//
// Configuration follows the teacher's builder package's functional-options
// convention (BuilderOption / newBuilderConfig): Option values mutate an
// unexported config struct applied in order over documented defaults.
package pipeline
