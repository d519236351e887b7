package upload

import "strconv"

// Helpers for extracting typed values from provider configuration maps.
// Values arrive from environment variables, JSON, and key=value flags, so
// loose string forms are accepted where they can be converted safely.

// StringValue extracts a string value from config.
func StringValue(config map[string]any, key string) (string, bool) {
	if val, ok := config[key]; ok {
		if str, ok := val.(string); ok {
			return str, true
		}
	}
	return "", false
}

// StringValueDefault extracts a string value, falling back to defaultValue.
func StringValueDefault(config map[string]any, key, defaultValue string) string {
	if val, ok := StringValue(config, key); ok {
		return val
	}
	return defaultValue
}

// BoolValue extracts a boolean value, falling back to defaultValue.
func BoolValue(config map[string]any, key string, defaultValue bool) bool {
	if val, ok := config[key]; ok {
		switch v := val.(type) {
		case bool:
			return v
		case string:
			if b, err := strconv.ParseBool(v); err == nil {
				return b
			}
		}
	}
	return defaultValue
}

// IntValue extracts an integer value, falling back to defaultValue.
func IntValue(config map[string]any, key string, defaultValue int) int {
	if val, ok := config[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		case string:
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
	}
	return defaultValue
}
