package binding_test

import (
	"encoding/json"
	"testing"

	"github.com/ByLCY/signboard/binding"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("unmarshal %q: %v", s, err)
	}
	return v
}

func TestInterpolate(t *testing.T) {
	data := decode(t, `{
		"name": "kitchen",
		"temp": 21.5,
		"count": 3,
		"on": true,
		"rooms": [{"label": "hall"}, {"label": "attic"}],
		"nested": {"deep": {"value": "x"}}
	}`)

	tests := []struct {
		in   string
		want string
	}{
		{"${name}", "kitchen"},
		{"temp ${temp}C", "temp 21.5C"},
		{"${count} items", "3 items"},
		{"${on}", "true"},
		{"${rooms[1].label}", "attic"},
		{"${rooms.0.label}", "hall"},
		{"${nested.deep.value}", "x"},
		{"${missing}", "${missing}"},
		{"${rooms[9].label}", "${rooms[9].label}"},
		{"${rooms[x].label}", "${rooms[x].label}"},
		{"no placeholders", "no placeholders"},
		{"${name} and ${name}", "kitchen and kitchen"},
	}
	for _, tt := range tests {
		if got := binding.Interpolate(tt.in, data); got != tt.want {
			t.Errorf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInterpolateBuiltins(t *testing.T) {
	if got := binding.Interpolate("${date}", nil); len(got) != len("2026-01-02") {
		t.Errorf("date builtin = %q", got)
	}
	if got := binding.Interpolate("${time}", nil); len(got) != len("15:04:05") {
		t.Errorf("time builtin = %q", got)
	}

	// Data shadows the built-in.
	data := decode(t, `{"time": "noon"}`)
	if got := binding.Interpolate("${time}", data); got != "noon" {
		t.Errorf("shadowed time = %q, want noon", got)
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := binding.Interpolate("${name}", nil); got != "${name}" {
		t.Errorf("got %q, want placeholder kept", got)
	}
}
