package common

import "testing"

func TestStringArg(t *testing.T) {
	args := map[string]interface{}{
		"name":  "value",
		"count": float64(3),
		"empty": "",
		"null":  nil,
	}

	tests := []struct {
		name string
		key  string
		def  string
		want string
	}{
		{"present", "name", "fallback", "value"},
		{"absent", "missing", "fallback", "fallback"},
		{"wrong type", "count", "fallback", "fallback"},
		{"empty string kept", "empty", "fallback", ""},
		{"nil value", "null", "fallback", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StringArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("StringArg(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestIntArg(t *testing.T) {
	args := map[string]interface{}{
		"count":    float64(42),
		"truncate": float64(3.9),
		"native":   7,
		"text":     "nope",
	}

	tests := []struct {
		name string
		key  string
		def  int
		want int
	}{
		{"float64", "count", 1, 42},
		{"truncated", "truncate", 1, 3},
		{"native int", "native", 1, 7},
		{"absent", "missing", 5, 5},
		{"wrong type", "text", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IntArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("IntArg(%q) = %d, want %d", tt.key, got, tt.want)
			}
		})
	}
}

func TestBoolArg(t *testing.T) {
	args := map[string]interface{}{
		"enabled":  true,
		"disabled": false,
		"text":     "true",
	}

	tests := []struct {
		name string
		key  string
		def  bool
		want bool
	}{
		{"true", "enabled", false, true},
		{"false", "disabled", true, false},
		{"absent", "missing", true, true},
		{"wrong type", "text", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BoolArg(args, tt.key, tt.def); got != tt.want {
				t.Errorf("BoolArg(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		name        string
		v, min, max int
		want        int
	}{
		{"below", -5, 1, 10, 1},
		{"above", 50, 1, 10, 10},
		{"inside", 5, 1, 10, 5},
		{"at min", 1, 1, 10, 1},
		{"at max", 10, 1, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampInt(tt.v, tt.min, tt.max); got != tt.want {
				t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.v, tt.min, tt.max, got, tt.want)
			}
		})
	}
}
