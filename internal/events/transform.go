package events

import "time"

// TransformStart is emitted before a transform run builds its first schema.
type TransformStart struct {
	Sources       int
	DirectiveName string
}

// TargetsScanned is emitted after the scan pass.
type TargetsScanned struct {
	Targets int
}

// TypesSynthesized is emitted once the connection types are generated.
type TypesSynthesized struct {
	Definitions int
}

// FieldsRewritten is emitted after the rewrite pass.
type FieldsRewritten struct {
	Fields int
}

// TransformFinish is emitted when a run ends, successfully or not.
type TransformFinish struct {
	Err      error
	Duration time.Duration
}
