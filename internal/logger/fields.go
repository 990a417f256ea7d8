package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields propagated through the call chain via context.
const (
	// FieldRequestID is the HTTP request ID (UUID)
	FieldRequestID = "request_id"

	// FieldUserID is the authenticated user ID
	FieldUserID = "user_id"

	// FieldCatID is the cat the request concerns
	FieldCatID = "cat_id"

	// FieldComponent is the component/module name
	FieldComponent = "component"

	// FieldStage is the translation pipeline stage (analyze/translate/judge)
	FieldStage = "stage"

	// FieldInputType is the consultation input type (text/photo/video)
	FieldInputType = "input_type"
)

// Metric fields attached at log-call sites for aggregation.
const (
	// FieldDurationMs is the execution duration in milliseconds
	FieldDurationMs = "duration_ms"

	// FieldCount is a generic count field
	FieldCount = "count"

	// FieldSize is the data size in bytes
	FieldSize = "size"

	// FieldStatus is the operation status
	FieldStatus = "status"

	// FieldMood is the mood assigned by the pipeline
	FieldMood = "mood"
)
