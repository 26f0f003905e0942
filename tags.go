package scopez

// Standard span tag keys, per the OpenTracing semantic conventions. These
// are pure data; tracers attach no meaning to them beyond what backends
// choose to.
const (
	// TagSpanKind hints at the relationship between spans, e.g. client/server.
	TagSpanKind = "span.kind"

	// TagComponent is the software package or framework generating the span.
	TagComponent = "component"

	// TagError is true if and only if the operation represented by the span
	// failed.
	TagError = "error"

	// TagSamplingPriority determines the priority of sampling this span.
	TagSamplingPriority = "sampling.priority"

	// TagService is the service name for a span, overriding any default
	// set by the tracer.
	TagService = "service"

	// HTTP tags for spans wrapping an HTTP request.
	TagHTTPURL        = "http.url"
	TagHTTPMethod     = "http.method"
	TagHTTPStatusCode = "http.status_code"

	// Peer tags describing the remote side of a network call.
	TagPeerService  = "peer.service"
	TagPeerAddress  = "peer.address"
	TagPeerHostname = "peer.hostname"
	TagPeerHostIPv4 = "peer.ipv4"
	TagPeerHostIPv6 = "peer.ipv6"
	TagPeerPort     = "peer.port"

	// Database tags for spans wrapping a database call.
	TagDBType      = "db.type"
	TagDBInstance  = "db.instance"
	TagDBUser      = "db.user"
	TagDBStatement = "db.statement"

	// TagMessageBusDestination is the address a message is sent to.
	TagMessageBusDestination = "message_bus.destination"
)

// Values for TagSpanKind.
const (
	SpanKindRPCClient = "client"
	SpanKindRPCServer = "server"
	SpanKindProducer  = "producer"
	SpanKindConsumer  = "consumer"
)

// StringTag is a tag key whose values are strings.
type StringTag string

// Set applies the tag to span.
func (t StringTag) Set(span Span, value string) {
	span.SetTag(string(t), value)
}

// IntTag is a tag key whose values are integers.
type IntTag string

// Set applies the tag to span.
func (t IntTag) Set(span Span, value int) {
	span.SetTag(string(t), value)
}

// BoolTag is a tag key whose values are booleans.
type BoolTag string

// Set applies the tag to span.
func (t BoolTag) Set(span Span, value bool) {
	span.SetTag(string(t), value)
}
