package scopez

import (
	"net/http"

	"github.com/pkg/errors"
)

// Propagation errors returned by Tracer.Inject and Tracer.Extract
// implementations.
var (
	// ErrUnsupportedFormat is returned when the format passed to
	// Inject/Extract is not recognized by the tracer. Every tracer must
	// support at least TextMap and Binary.
	ErrUnsupportedFormat = errors.New("scopez: unknown or unsupported Inject/Extract format")

	// ErrSpanContextNotFound is returned by Extract when the carrier holds
	// no propagated state at all. Absence is not a failure; callers start a
	// fresh trace instead.
	ErrSpanContextNotFound = errors.New("scopez: span context not found in Extract carrier")

	// ErrInvalidSpanContext is returned by Inject when the SpanContext was
	// not produced by the injecting tracer.
	ErrInvalidSpanContext = errors.New("scopez: Inject called with an incompatible SpanContext")

	// ErrInvalidCarrier is returned when the carrier does not have the
	// shape the chosen format requires.
	ErrInvalidCarrier = errors.New("scopez: Inject/Extract carrier does not match format")

	// ErrSpanContextCorrupted is returned by Extract when propagated state
	// is present but unparseable (wrong version, corrupt values).
	ErrSpanContextCorrupted = errors.New("scopez: Extract carrier held corrupted span context state")
)

// BuiltinFormat selects one of the closed set of carrier encodings for
// Tracer.Inject and Tracer.Extract. Each format is statically paired with
// the carrier shape it requires.
type BuiltinFormat byte

const (
	// Binary encodes the SpanContext as an opaque byte stream.
	//
	// Inject carrier: io.Writer. Extract carrier: io.Reader.
	Binary BuiltinFormat = iota

	// TextMap encodes the SpanContext as arbitrary string-to-string
	// entries. Neither keys nor values are constrained.
	//
	// Inject carrier: TextMapWriter. Extract carrier: TextMapReader.
	TextMap

	// HTTPHeaders is TextMap with the extra contract that keys and values
	// are valid as HTTP headers: keys case-insensitive, values URL-escaped.
	//
	// Inject carrier: TextMapWriter. Extract carrier: TextMapReader.
	HTTPHeaders
)

func (f BuiltinFormat) String() string {
	switch f {
	case Binary:
		return "Binary"
	case TextMap:
		return "TextMap"
	case HTTPHeaders:
		return "HTTPHeaders"
	}
	return "UnknownFormat"
}

// TextMapWriter is the write half of a text-map carrier, used by Inject.
type TextMapWriter interface {
	// Set stores a key/value entry, replacing any previous value for key.
	Set(key, value string)
}

// TextMapReader is the read half of a text-map carrier, used by Extract.
type TextMapReader interface {
	// ForeachKey calls handler for every entry in the carrier, each entry
	// exactly once, in no particular order. Returns the first non-nil error
	// from handler, short-circuiting the iteration.
	ForeachKey(handler func(key, value string) error) error
}

// TextMapCarrier is a read/write text-map carrier over a plain map, usable
// for both Inject and Extract.
type TextMapCarrier map[string]string

// Set implements TextMapWriter.
func (c TextMapCarrier) Set(key, value string) {
	c[key] = value
}

// ForeachKey implements TextMapReader.
func (c TextMapCarrier) ForeachKey(handler func(key, value string) error) error {
	for k, v := range c {
		if err := handler(k, v); err != nil {
			return err
		}
	}
	return nil
}

// TextMapExtractCarrier exposes a plain map as a carrier for Extract only.
// It implements TextMapReader and deliberately not TextMapWriter, so writing
// through it is impossible at compile time and passing it to Inject fails
// with ErrInvalidCarrier. Extraction never needs to mutate its carrier;
// the asymmetry keeps extracted-context carriers from being reused for
// injection by accident.
type TextMapExtractCarrier map[string]string

// ForeachKey implements TextMapReader.
func (c TextMapExtractCarrier) ForeachKey(handler func(key, value string) error) error {
	for k, v := range c {
		if err := handler(k, v); err != nil {
			return err
		}
	}
	return nil
}

// HTTPHeadersCarrier is a read/write carrier over http.Header for use with
// the HTTPHeaders format.
//
//	carrier := scopez.HTTPHeadersCarrier(req.Header)
//	err := tracer.Inject(span.Context(), scopez.HTTPHeaders, carrier)
type HTTPHeadersCarrier http.Header

// Set implements TextMapWriter.
func (c HTTPHeadersCarrier) Set(key, value string) {
	http.Header(c).Set(key, value)
}

// ForeachKey implements TextMapReader.
func (c HTTPHeadersCarrier) ForeachKey(handler func(key, value string) error) error {
	for k, vals := range c {
		for _, v := range vals {
			if err := handler(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
