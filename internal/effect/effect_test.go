package effect

import (
	"sort"
	"testing"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/config"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
)

// scriptStrip records which controller operation each Step invoked.
type scriptStrip struct {
	calls []string
	fill  frame.Color
	grad  [2]frame.Color
	off   int
}

func (s *scriptStrip) Count() int { return 8 }

func (s *scriptStrip) Fill(c frame.Color) error {
	s.calls = append(s.calls, "fill")
	s.fill = c
	return nil
}

func (s *scriptStrip) Gradient(start, end frame.Color) error {
	s.calls = append(s.calls, "gradient")
	s.grad = [2]frame.Color{start, end}
	return nil
}

func (s *scriptStrip) Rainbow(offset int) error {
	s.calls = append(s.calls, "rainbow")
	s.off = offset
	return nil
}

func TestSolidStep(t *testing.T) {
	s := &scriptStrip{}
	e := Solid{Color: frame.Color{R: 9, G: 8, B: 7}}
	if err := e.Step(s, 42); err != nil {
		t.Fatal(err)
	}
	if s.fill != (frame.Color{R: 9, G: 8, B: 7}) {
		t.Fatalf("fill color %+v", s.fill)
	}
}

func TestGradientStep(t *testing.T) {
	s := &scriptStrip{}
	e := Gradient{Start: frame.Color{R: 255}, End: frame.Color{B: 255}}
	if err := e.Step(s, 0); err != nil {
		t.Fatal(err)
	}
	if s.grad[0] != (frame.Color{R: 255}) || s.grad[1] != (frame.Color{B: 255}) {
		t.Fatalf("gradient endpoints %+v", s.grad)
	}
}

func TestRainbowStepPassesTickAsOffset(t *testing.T) {
	s := &scriptStrip{}
	for tick := 0; tick < 3; tick++ {
		if err := (Rainbow{}).Step(s, tick); err != nil {
			t.Fatal(err)
		}
		if s.off != tick {
			t.Fatalf("tick %d: offset %d", tick, s.off)
		}
	}
}

func TestDefaultRegistryBuild(t *testing.T) {
	reg := DefaultRegistry()

	names := reg.List()
	sort.Strings(names)
	want := []string{"gradient", "rainbow", "solid"}
	if len(names) != len(want) {
		t.Fatalf("registry lists %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("registry lists %v, want %v", names, want)
		}
	}

	e, err := reg.Build(config.Effect{Name: "solid", Color: config.RGB{R: 1, G: 2, B: 3}})
	if err != nil {
		t.Fatal(err)
	}
	solid, ok := e.(Solid)
	if !ok || solid.Color != (frame.Color{R: 1, G: 2, B: 3}) {
		t.Fatalf("built %#v", e)
	}

	if _, err := reg.Build(config.Effect{Name: "disco"}); err == nil {
		t.Fatal("expected error for unknown effect")
	}
}
