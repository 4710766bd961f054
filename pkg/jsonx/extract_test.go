package jsonx

import "testing"

func TestPickString(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]any
		keys     []string
		expected string
		ok       bool
	}{
		{
			name:     "first key wins",
			obj:      map[string]any{"team_name": "Arsenal", "name": "ignored"},
			keys:     []string{"team_name", "name"},
			expected: "Arsenal",
			ok:       true,
		},
		{
			name:     "skips empty and falls through",
			obj:      map[string]any{"team_name": "   ", "name": "Lyon"},
			keys:     []string{"team_name", "name"},
			expected: "Lyon",
			ok:       true,
		},
		{
			name:     "numeric coercion",
			obj:      map[string]any{"id": float64(42)},
			keys:     []string{"id"},
			expected: "42",
			ok:       true,
		},
		{
			name:     "trims whitespace",
			obj:      map[string]any{"venue": "  Anfield  "},
			keys:     []string{"venue"},
			expected: "Anfield",
			ok:       true,
		},
		{
			name: "miss on nil values",
			obj:  map[string]any{"venue": nil},
			keys: []string{"venue"},
			ok:   false,
		},
		{
			name: "nil object",
			obj:  nil,
			keys: []string{"anything"},
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickString(tt.obj, tt.keys...)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("PickString() = (%q, %v), want (%q, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestPickNumber(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]any
		keys     []string
		expected float64
		ok       bool
	}{
		{
			name:     "plain number",
			obj:      map[string]any{"points": float64(31)},
			keys:     []string{"points"},
			expected: 31,
			ok:       true,
		},
		{
			name:     "numeric string",
			obj:      map[string]any{"points": "28"},
			keys:     []string{"points"},
			expected: 28,
			ok:       true,
		},
		{
			name:     "nested total shape",
			obj:      map[string]any{"goals": map[string]any{"total": float64(15), "penalties": float64(3)}},
			keys:     []string{"goals"},
			expected: 15,
			ok:       true,
		},
		{
			name: "non-numeric string misses",
			obj:  map[string]any{"points": "n/a"},
			keys: []string{"points"},
			ok:   false,
		},
		{
			name:     "ordered preference",
			obj:      map[string]any{"pts": "x", "standing_PTS": float64(10)},
			keys:     []string{"pts", "standing_PTS"},
			expected: 10,
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickNumber(tt.obj, tt.keys...)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("PickNumber() = (%v, %v), want (%v, %v)", got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestAsArray(t *testing.T) {
	rows := []any{map[string]any{"a": float64(1)}}

	if got := AsArray(rows); len(got) != 1 {
		t.Errorf("AsArray(slice) returned %d items, want 1", len(got))
	}
	if got := AsArray(map[string]any{"data": rows}); len(got) != 1 {
		t.Errorf("AsArray(data envelope) returned %d items, want 1", len(got))
	}
	if got := AsArray("scalar"); got != nil {
		t.Errorf("AsArray(scalar) = %v, want nil", got)
	}
}
