package utils

import "testing"

func TestOptionGetString(t *testing.T) {
	tests := []struct {
		name     string
		opts     Option
		key      string
		expected string
		wantErr  bool
	}{
		{"string value", Option{"audio.encoding": "mulaw"}, "audio.encoding", "mulaw", false},
		{"numeric value stringified", Option{"rate": 8000}, "rate", "8000", false},
		{"missing key", Option{}, "audio.encoding", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.opts.GetString(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestOptionGetInt(t *testing.T) {
	tests := []struct {
		name     string
		opts     Option
		key      string
		expected int
		wantErr  bool
	}{
		{"int value", Option{"rate": 16000}, "rate", 16000, false},
		{"float value", Option{"rate": float64(8000)}, "rate", 8000, false},
		{"numeric string", Option{"rate": "48000"}, "rate", 48000, false},
		{"non-numeric string", Option{"rate": "fast"}, "rate", 0, true},
		{"missing key", Option{}, "rate", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := tt.opts.GetInt(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, result)
			}
		})
	}
}

func TestOptionGetBool(t *testing.T) {
	tests := []struct {
		name     string
		opts     Option
		key      string
		expected bool
	}{
		{"true value", Option{"verbose": true}, "verbose", true},
		{"false value", Option{"verbose": false}, "verbose", false},
		{"missing key", Option{}, "verbose", false},
		{"wrong type", Option{"verbose": "yes"}, "verbose", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.opts.GetBool(tt.key); result != tt.expected {
				t.Errorf("expected %t, got %t", tt.expected, result)
			}
		})
	}
}
