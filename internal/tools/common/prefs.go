package common

import (
	"log/slog"
)

// StringArg reads an optional string argument, falling back to def when the
// argument is absent. A present value of the wrong type logs a warning and
// falls back to def.
func StringArg(args map[string]interface{}, key, def string) string {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def
	}
	val, ok := raw.(string)
	if !ok {
		slog.Warn("ignoring argument with unexpected type",
			slog.String("argument", key),
			slog.String("expected", "string"))
		return def
	}
	return val
}

// IntArg reads an optional integer argument, falling back to def when the
// argument is absent. JSON numbers arrive as float64 and are truncated. A
// present value of the wrong type logs a warning and falls back to def.
func IntArg(args map[string]interface{}, key string, def int) int {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def
	}
	switch val := raw.(type) {
	case float64:
		return int(val)
	case int:
		return val
	default:
		slog.Warn("ignoring argument with unexpected type",
			slog.String("argument", key),
			slog.String("expected", "number"))
		return def
	}
}

// BoolArg reads an optional boolean argument, falling back to def when the
// argument is absent. A present value of the wrong type logs a warning and
// falls back to def.
func BoolArg(args map[string]interface{}, key string, def bool) bool {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def
	}
	val, ok := raw.(bool)
	if !ok {
		slog.Warn("ignoring argument with unexpected type",
			slog.String("argument", key),
			slog.String("expected", "boolean"))
		return def
	}
	return val
}

// ClampInt bounds v to the inclusive range [min, max].
func ClampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
