package session

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"main", true},
		{"work123", true},
		{"demo-2", true},
		{"qa_run", true},
		{"x", true},
		{strings.Repeat("s", 64), true},
		{strings.Repeat("s", 65), false},
		{"", false},
		{"-leading", false},
		{"_leading", false},
		{"Main", false},
		{"two words", false},
		{"../escape", false},
		{"dot.name", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.ok && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.input, err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidName) {
				t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", tt.input, err)
			}
		})
	}
}
