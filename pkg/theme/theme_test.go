package theme

import (
	"testing"

	"github.com/matzehuels/evotree/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateRejectsBadColour(t *testing.T) {
	tests := []struct {
		name  string
		color string
	}{
		{"missing hash", "4AABFF"},
		{"named colour", "blue"},
		{"wrong length", "#4AABF"},
		{"not hex", "#GGGGGG"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := Default()
			th.Accent = tt.color
			err := th.Validate()
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Validate() = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestHealthColor(t *testing.T) {
	th := Default()
	tests := []struct {
		health int
		want   string
	}{
		{100, th.Success},
		{71, th.Success},
		{70, th.Warning},
		{36, th.Warning},
		{30, th.Danger},
		{0, th.Danger},
	}
	for _, tt := range tests {
		if got := th.HealthColor(tt.health); got != tt.want {
			t.Errorf("HealthColor(%d) = %s, want %s", tt.health, got, tt.want)
		}
	}
}

func TestOpaque(t *testing.T) {
	if got := Opaque("#4AABFF33"); got != "#4AABFF" {
		t.Errorf("Opaque(#4AABFF33) = %s", got)
	}
	if got := Opaque("#FFF"); got != "#FFF" {
		t.Errorf("Opaque(#FFF) = %s", got)
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		color, bg, want string
	}{
		{"#FFFFFF80", "#000000", "#808080"},
		{"#4AABFF", "#000000", "#4aabff"},
		{"#FFFFFF00", "#1A2B45", "#1a2b45"},
	}
	for _, tt := range tests {
		got, err := Flatten(tt.color, tt.bg)
		if err != nil {
			t.Fatalf("Flatten(%s, %s) error: %v", tt.color, tt.bg, err)
		}
		if got != tt.want {
			t.Errorf("Flatten(%s, %s) = %s, want %s", tt.color, tt.bg, got, tt.want)
		}
	}

	if _, err := Flatten("blue", "#000000"); err == nil {
		t.Error("Flatten(blue) should fail")
	}
	if got := Solid("blue", "#000000"); got != "blue" {
		t.Errorf("Solid(blue) = %s, want input unchanged", got)
	}
}
