package effect

import (
	"fmt"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/config"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
)

// Strip is the controller surface effects drive. One Step call produces
// exactly one transmitted frame.
type Strip interface {
	Count() int
	Fill(frame.Color) error
	Gradient(start, end frame.Color) error
	Rainbow(offset int) error
}

// Effect paints the strip for one tick. tick counts frames since the
// runner started; static effects ignore it and just retransmit, which
// doubles as the keep-alive the device expects.
type Effect interface {
	Name() string
	Step(s Strip, tick int) error
}

// Solid holds the whole strip at one color.
type Solid struct {
	Color frame.Color
}

func (Solid) Name() string                { return "solid" }
func (e Solid) Step(s Strip, _ int) error { return s.Fill(e.Color) }

// Gradient holds a linear blend from Start to End.
type Gradient struct {
	Start, End frame.Color
}

func (Gradient) Name() string                { return "gradient" }
func (e Gradient) Step(s Strip, _ int) error { return s.Gradient(e.Start, e.End) }

// Rainbow scrolls the hue circle one LED per tick.
type Rainbow struct{}

func (Rainbow) Name() string                 { return "rainbow" }
func (Rainbow) Step(s Strip, tick int) error { return s.Rainbow(tick) }

// Registry maps effect names to constructors taking their config block.
type Registry struct {
	m map[string]func(config.Effect) Effect
}

func NewRegistry() *Registry {
	return &Registry{m: map[string]func(config.Effect) Effect{}}
}

func (r *Registry) Register(name string, build func(config.Effect) Effect) {
	r.m[name] = build
}

func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	return out
}

// Build constructs the effect named by cfg.
func (r *Registry) Build(cfg config.Effect) (Effect, error) {
	build, ok := r.m[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("unknown effect: %q", cfg.Name)
	}
	return build(cfg), nil
}

// DefaultRegistry wires the built-in effects.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("solid", func(c config.Effect) Effect {
		return Solid{Color: rgb(c.Color)}
	})
	r.Register("gradient", func(c config.Effect) Effect {
		return Gradient{Start: rgb(c.Start), End: rgb(c.End)}
	})
	r.Register("rainbow", func(config.Effect) Effect {
		return Rainbow{}
	})
	return r
}

func rgb(c config.RGB) frame.Color {
	return frame.Color{R: c.R, G: c.G, B: c.B}
}
