package errors

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/pagemarks/pkg/geom"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"number", "42", false},
		{"roman", "xiv", false},
		{"unicode", "頁12", false},

		{"empty", "", true},
		{"too long", strings.Repeat("9", 65), true},
		{"newline", "4\n2", true},
		{"null byte", "4\x002", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScene) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidateRect(t *testing.T) {
	tests := []struct {
		name    string
		rect    geom.Rect
		wantErr bool
	}{
		{"zero", geom.Rect{}, false},
		{"negative origin", geom.Rect{Left: -10, Top: -20, Width: 5, Height: 5}, false},

		{"negative width", geom.Rect{Width: -1}, true},
		{"negative height", geom.Rect{Height: -1}, true},
		{"nan", geom.Rect{Top: math.NaN()}, true},
		{"inf", geom.Rect{Height: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRect("viewport", tt.rect)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRect(%+v) error = %v, wantErr %v", tt.rect, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFinite(t *testing.T) {
	tests := []struct {
		name    string
		value   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"negative", -1000, false},
		{"nan", math.NaN(), true},
		{"+inf", math.Inf(1), true},
		{"-inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFinite("vertical offset", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFinite(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidScene {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidScene)
			}
		})
	}
}

func TestValidatePoint(t *testing.T) {
	tests := []struct {
		name    string
		point   geom.Point
		wantErr bool
	}{
		{"origin", geom.Point{}, false},
		{"offset", geom.Point{X: -20, Y: 400}, false},
		{"nan x", geom.Point{X: math.NaN()}, true},
		{"inf y", geom.Point{Y: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePoint("frame offset", tt.point)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePoint(%+v) error = %v, wantErr %v", tt.point, err, tt.wantErr)
			}
		})
	}
}

func TestValidateScenePath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantErr  bool
		wantCode Code
	}{
		{"json", "scene.json", false, ""},
		{"toml", "scenes/spread.toml", false, ""},
		{"yaml upper", "SCENE.YAML", false, ""},
		{"yml", "a.yml", false, ""},

		{"empty", "", true, ErrCodeInvalidPath},
		{"control char", "sc\x01ene.json", true, ErrCodeInvalidPath},
		{"no extension", "scene", true, ErrCodeInvalidFormat},
		{"xml", "scene.xml", true, ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateScenePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != tt.wantCode {
				t.Errorf("code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}
