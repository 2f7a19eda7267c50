package measure

import (
	"math"
	"testing"

	"github.com/matzehuels/pagemarks/pkg/geom"
	"github.com/matzehuels/pagemarks/pkg/markers"
)

func TestFixed(t *testing.T) {
	f := Fixed{Width: 30, Height: 40}
	if got := f.Measure(&markers.Marker{Title: "anything"}); got != (geom.Size{Width: 30, Height: 40}) {
		t.Errorf("Measure() = %+v", got)
	}
}

func TestText(t *testing.T) {
	m := Text{CellWidth: 10, LineHeight: 12, Padding: 2}

	tests := []struct {
		title string
		width float64
	}{
		{"", 4},
		{"12", 24},
		{"xii", 34},
		{"頁", 24}, // wide rune takes two cells
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := m.Measure(&markers.Marker{Title: tt.title})
			if got.Width != tt.width {
				t.Errorf("Width = %v, want %v", got.Width, tt.width)
			}
			if got.Height != 16 {
				t.Errorf("Height = %v, want 16", got.Height)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    geom.Size
		wantErr bool
	}{
		{name: "default", cfg: Config{}, want: markers.DefaultMarkerSize},
		{name: "fixed override", cfg: Config{Kind: KindFixed, Height: 50}, want: geom.Size{Width: markers.DefaultMarkerSize.Width, Height: 50}},
		{name: "text", cfg: Config{Kind: KindText, CellWidth: 5}, want: geom.Size{Width: 18, Height: 20}},
		{name: "unknown", cfg: Config{Kind: "dom"}, wantErr: true},
		{name: "infinite width", cfg: Config{Kind: KindFixed, Width: math.Inf(1)}, wantErr: true},
		{name: "nan padding", cfg: Config{Kind: KindText, Padding: math.NaN()}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := m.Measure(&markers.Marker{Title: "12"}); got != tt.want {
				t.Errorf("Measure() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
