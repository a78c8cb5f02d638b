package convert

import (
	"encoding/json"
	"fmt"
)

// ToJSON serializes a value to a JSON string.
func ToJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	return string(data), nil
}

// FromJSON deserializes a JSON string into the given value.
func FromJSON(s string, v any) error {
	if s == "" {
		return nil
	}

	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to unmarshal from JSON: %w", err)
	}

	return nil
}

// MustToJSON serializes a value to a JSON string, panics on error.
func MustToJSON(v any) string {
	s, err := ToJSON(v)
	if err != nil {
		panic(err)
	}
	return s
}

// ToJSONMap converts a value to map[string]any through a JSON round trip.
// Engine response payloads decoded into opaque types pass through here.
func ToJSONMap(v any) (map[string]any, error) {
	if v == nil {
		return nil, nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal to map: %w", err)
	}

	return result, nil
}

// FromJSONMap converts a map[string]any into the given value through a
// JSON round trip.
func FromJSONMap(m map[string]any, v any) error {
	if m == nil {
		return nil
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal map to JSON: %w", err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal from map: %w", err)
	}

	return nil
}

// PrettyJSON formats a value as an indented JSON string.
func PrettyJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to pretty JSON: %w", err)
	}

	return string(data), nil
}
