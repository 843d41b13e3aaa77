package envelope

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/kbukum/paykit/errors"
)

// Envelope keys, checked in this order.
const (
	KeyStatus  = "status"
	KeyCode    = "code"
	KeyMessage = "message"
	KeyError   = "error"
	KeyErrors  = "errors"
	KeyData    = "data"

	statusError = "error"
)

// ErrEmptyBody is the cause of the MALFORMED_RESPONSE returned for a
// response without a body.
var ErrEmptyBody = stderrors.New("Error: HTTP response is null")

// Parse decodes a response body into its success payload or a structured
// failure:
//
//   - an empty body is MALFORMED_RESPONSE caused by ErrEmptyBody
//   - a body that is not JSON is MALFORMED_RESPONSE
//   - {"status":"error","code":..,"message":..} is SERVICE_ERROR with that code
//   - {"error":x} is SERVICE_ERROR "Error: x"
//   - {"errors":[a,b]} is SERVICE_ERROR "Multiple errors:\na\nb"
//   - {"data":x} yields x; any other document is its own payload
//
// A non-array "errors" member is ignored.
func Parse(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, errors.Malformed(ErrEmptyBody.Error(), ErrEmptyBody)
	}

	var root any
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, errors.Malformed("Error - failed to parse json response to map : "+err.Error(), err)
	}

	// Only objects can carry envelope members.
	if trimmed[0] != '{' {
		return json.RawMessage(trimmed), nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Malformed("Error - failed to parse json response to map : "+err.Error(), err)
	}

	if status, ok := doc[KeyStatus]; ok && Text(status) == statusError {
		return nil, errors.Service(optionalText(doc[KeyCode]), optionalText(doc[KeyMessage]))
	}

	if node, ok := doc[KeyError]; ok {
		return nil, errors.Service("", "Error: "+Text(node))
	}

	if node, ok := doc[KeyErrors]; ok {
		var items []json.RawMessage
		if json.Unmarshal(node, &items) == nil && isArray(node) {
			var msg strings.Builder
			msg.WriteString("Multiple errors:")
			for _, item := range items {
				msg.WriteString("\n")
				msg.WriteString(Text(item))
			}
			return nil, errors.Service("", msg.String()).
				WithDetail("count", len(items))
		}
	}

	if data, ok := doc[KeyData]; ok {
		return data, nil
	}
	return json.RawMessage(trimmed), nil
}

// Text returns the textual form of a JSON value: the unquoted content of a
// string, the literal of a number, boolean or null, and compact JSON for
// arrays and objects.
func Text(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	if raw[0] == '{' || raw[0] == '[' {
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err == nil {
			return buf.String()
		}
	}
	return string(raw)
}

// Unquote returns the payload text with surrounding quote characters
// removed: a JSON string yields its content, anything else its textual form
// with leading and trailing '"' trimmed.
func Unquote(raw json.RawMessage) string {
	return strings.Trim(Text(raw), `"`)
}

// optionalText is Text for members that may be absent or null.
func optionalText(raw json.RawMessage) string {
	if raw == nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return ""
	}
	return Text(raw)
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// Describe is a short description of a payload for log lines.
func Describe(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "empty"
	}
	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	default:
		return fmt.Sprintf("literal(%d bytes)", len(raw))
	}
}
