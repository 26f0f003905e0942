package mocktracer

import (
	"encoding/json"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/zoobzio/scopez"
)

// Text-map field names. Baggage entries travel under the baggage- prefix.
const (
	fieldNameTraceID = "trace-id"
	fieldNameSpanID  = "span-id"
	fieldNameSampled = "sampled"
	baggagePrefix    = "baggage-"
)

// Inject implements scopez.Tracer.
func (t *MockTracer) Inject(sc scopez.SpanContext, format interface{}, carrier interface{}) error {
	ctx, ok := sc.(MockSpanContext)
	if !ok {
		return scopez.ErrInvalidSpanContext
	}

	builtin, ok := format.(scopez.BuiltinFormat)
	if !ok {
		return scopez.ErrUnsupportedFormat
	}
	switch builtin {
	case scopez.TextMap:
		return injectTextMap(ctx, carrier, false)
	case scopez.HTTPHeaders:
		return injectTextMap(ctx, carrier, true)
	case scopez.Binary:
		return injectBinary(ctx, carrier)
	}
	return scopez.ErrUnsupportedFormat
}

// Extract implements scopez.Tracer.
func (t *MockTracer) Extract(format interface{}, carrier interface{}) (scopez.SpanContext, error) {
	builtin, ok := format.(scopez.BuiltinFormat)
	if !ok {
		return nil, scopez.ErrUnsupportedFormat
	}
	switch builtin {
	case scopez.TextMap:
		return extractTextMap(carrier, false)
	case scopez.HTTPHeaders:
		return extractTextMap(carrier, true)
	case scopez.Binary:
		return extractBinary(carrier)
	}
	return nil, scopez.ErrUnsupportedFormat
}

func injectTextMap(ctx MockSpanContext, carrier interface{}, headerSafe bool) error {
	writer, ok := carrier.(scopez.TextMapWriter)
	if !ok {
		return scopez.ErrInvalidCarrier
	}
	writer.Set(fieldNameTraceID, strconv.Itoa(ctx.TraceID))
	writer.Set(fieldNameSpanID, strconv.Itoa(ctx.SpanID))
	writer.Set(fieldNameSampled, strconv.FormatBool(ctx.Sampled))
	for k, v := range ctx.Baggage {
		if headerSafe {
			v = url.QueryEscape(v)
		}
		writer.Set(baggagePrefix+k, v)
	}
	return nil
}

func extractTextMap(carrier interface{}, headerSafe bool) (scopez.SpanContext, error) {
	reader, ok := carrier.(scopez.TextMapReader)
	if !ok {
		return nil, scopez.ErrInvalidCarrier
	}

	ctx := MockSpanContext{}
	var traceFound, spanFound bool
	err := reader.ForeachKey(func(key, value string) error {
		// HTTP headers arrive in canonical case; field names compare
		// case-insensitively.
		key = strings.ToLower(key)
		switch key {
		case fieldNameTraceID:
			id, err := strconv.Atoi(value)
			if err != nil {
				return scopez.ErrSpanContextCorrupted
			}
			ctx.TraceID = id
			traceFound = true
		case fieldNameSpanID:
			id, err := strconv.Atoi(value)
			if err != nil {
				return scopez.ErrSpanContextCorrupted
			}
			ctx.SpanID = id
			spanFound = true
		case fieldNameSampled:
			sampled, err := strconv.ParseBool(value)
			if err != nil {
				return scopez.ErrSpanContextCorrupted
			}
			ctx.Sampled = sampled
		default:
			if strings.HasPrefix(key, baggagePrefix) {
				if headerSafe {
					unescaped, err := url.QueryUnescape(value)
					if err != nil {
						return scopez.ErrSpanContextCorrupted
					}
					value = unescaped
				}
				ctx = ctx.WithBaggageItem(strings.TrimPrefix(key, baggagePrefix), value)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !traceFound && !spanFound {
		return nil, scopez.ErrSpanContextNotFound
	}
	if !traceFound || !spanFound {
		// Half a context is no context.
		return nil, scopez.ErrSpanContextCorrupted
	}
	return ctx, nil
}

// binaryPayload is the wire shape of the Binary format. The encoding is
// private to MockTracer; only its opacity is contractual.
type binaryPayload struct {
	TraceID int               `json:"trace_id"`
	SpanID  int               `json:"span_id"`
	Sampled bool              `json:"sampled"`
	Baggage map[string]string `json:"baggage,omitempty"`
}

func injectBinary(ctx MockSpanContext, carrier interface{}) error {
	w, ok := carrier.(io.Writer)
	if !ok {
		return scopez.ErrInvalidCarrier
	}
	return json.NewEncoder(w).Encode(binaryPayload{
		TraceID: ctx.TraceID,
		SpanID:  ctx.SpanID,
		Sampled: ctx.Sampled,
		Baggage: ctx.Baggage,
	})
}

func extractBinary(carrier interface{}) (scopez.SpanContext, error) {
	r, ok := carrier.(io.Reader)
	if !ok {
		return nil, scopez.ErrInvalidCarrier
	}
	var payload binaryPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		if err == io.EOF {
			return nil, scopez.ErrSpanContextNotFound
		}
		return nil, scopez.ErrSpanContextCorrupted
	}
	if payload.TraceID == 0 || payload.SpanID == 0 {
		return nil, scopez.ErrSpanContextCorrupted
	}
	return MockSpanContext{
		TraceID: payload.TraceID,
		SpanID:  payload.SpanID,
		Sampled: payload.Sampled,
		Baggage: payload.Baggage,
	}, nil
}
