// Package provconf assembles upload-provider configuration from
// environment variables, JSON, and key=value flags.
package provconf

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the environment namespace for provider configuration:
// RELAY_UPLOAD_CONFIG may hold a JSON object, and RELAY_UPLOAD_CONFIG_*
// variables set individual keys.
const EnvPrefix = "RELAY_UPLOAD_CONFIG"

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	parts := strings.SplitN(kvPair, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	valueStr := strings.TrimSpace(parts[1])

	// Try integer first so "1" does not become boolean true
	if intVal, err := strconv.Atoi(valueStr); err == nil {
		return key, intVal, nil
	}

	if floatVal, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return key, floatVal, nil
	}

	if valueStr == "true" || valueStr == "false" {
		boolVal, _ := strconv.ParseBool(valueStr)
		return key, boolVal, nil
	}

	return key, valueStr, nil
}

// ParseJSON parses a JSON object string into a config map.
func ParseJSON(jsonStr string) (map[string]any, error) {
	var result map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return result, nil
}

// ParseFile reads and parses a JSON object from a file.
func ParseFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON in file %s: %w", path, err)
	}
	return result, nil
}

// parseEnv collects provider configuration from the RELAY_UPLOAD_CONFIG
// namespace, applying the same type inference as ParseKV.
func parseEnv() map[string]any {
	config := make(map[string]any)

	if jsonStr := os.Getenv(EnvPrefix); jsonStr != "" {
		if parsed, err := ParseJSON(jsonStr); err == nil {
			maps.Copy(config, parsed)
		}
	}

	envPrefix := EnvPrefix + "_"
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], envPrefix))
		_, value, _ := ParseKV(key + "=" + parts[1])
		config[key] = value
	}

	if len(config) == 0 {
		return nil
	}
	return config
}

// Build merges provider configuration from all sources. Precedence, lowest
// to highest: environment, config file, JSON string, key=value pairs.
func Build(jsonStr string, kvPairs []string, filePath string) (map[string]any, error) {
	result := make(map[string]any)

	if envConf := parseEnv(); envConf != nil {
		maps.Copy(result, envConf)
	}

	if filePath != "" {
		fileConf, err := ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		maps.Copy(result, fileConf)
	}

	if jsonStr != "" {
		jsonConf, err := ParseJSON(jsonStr)
		if err != nil {
			return nil, err
		}
		maps.Copy(result, jsonConf)
	}

	for _, kv := range kvPairs {
		key, value, err := ParseKV(kv)
		if err != nil {
			return nil, err
		}
		result[key] = value
	}

	return result, nil
}
