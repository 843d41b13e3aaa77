package envelope

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Merge copies every top-level member of src into dst, replacing members
// present in both and leaving the rest of dst untouched. Nested objects are
// replaced, not merged. It returns dst, allocating it when nil.
func Merge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// MergeInto applies payload onto *target with Merge semantics. target is
// encoded to a JSON document, payload's members are merged over it and the
// result is decoded into a fresh T that replaces *target. Fields the payload
// does not mention keep their value. payload must be a JSON object.
func MergeInto[T any](target *T, payload json.RawMessage) error {
	current, err := json.Marshal(target)
	if err != nil {
		return fmt.Errorf("encode target: %w", err)
	}
	dst, err := decodeObject(current)
	if err != nil {
		return fmt.Errorf("decode target: %w", err)
	}
	src, err := decodeObject(payload)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	merged, err := json.Marshal(Merge(dst, src))
	if err != nil {
		return fmt.Errorf("encode merged document: %w", err)
	}

	var fresh T
	if err := json.Unmarshal(merged, &fresh); err != nil {
		return err
	}
	*target = fresh
	return nil
}

// decodeObject decodes a JSON object keeping numbers exact.
func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("expected a JSON object, got null")
	}
	return doc, nil
}
