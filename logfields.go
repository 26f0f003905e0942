package scopez

// Standard log field keys for Span.LogKV, per the OpenTracing semantic
// conventions.
const (
	// LogFieldEvent is a stable identifier for some notable moment in the
	// lifetime of a span: "error", or more domain-specific values like
	// "initialized" or "timed out".
	LogFieldEvent = "event"

	// LogFieldMessage is a concise, human-readable, one-line description of
	// the event.
	LogFieldMessage = "message"

	// LogFieldErrorKind is the type or "kind" of an error, for event="error"
	// logs only.
	LogFieldErrorKind = "error.kind"

	// LogFieldErrorObject is the error value itself, for event="error" logs
	// only.
	LogFieldErrorObject = "error.object"

	// LogFieldStack is a stack trace in platform-conventional format, with
	// or without the error.
	LogFieldStack = "stack"
)
