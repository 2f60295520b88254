package controller

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/boombuster2000/SkydimoAmbientLights/internal/frame"
	"github.com/boombuster2000/SkydimoAmbientLights/internal/transport"
)

var (
	// ErrLedCount rejects construction with a count the wire format
	// cannot address.
	ErrLedCount = errors.New("led count out of range")
	// ErrNotOpen is returned when a write is attempted before Open.
	ErrNotOpen = errors.New("sink not open")
	// ErrIndexRange is returned by SetLed for an index outside [0,N).
	ErrIndexRange = errors.New("led index out of range")
	// ErrLengthMismatch is returned when a color slice does not cover
	// the whole strip. The protocol has no partial-update frame.
	ErrLengthMismatch = errors.New("color count does not match led count")
)

// Controller drives an Adalight strip through a transport.Sink. It
// keeps the last successfully transmitted color per LED so SetLed can
// do read-modify-write without ever reading the hardware.
//
// Not safe for concurrent use; callers serialize access themselves.
type Controller struct {
	sink    transport.Sink
	buf     *frame.Buffer
	count   int
	current []frame.Color
	isOpen  bool
	log     zerolog.Logger

	// observer sees each frame after the sink accepted it.
	observer func([]byte)
}

// New builds a controller for ledCount LEDs over sink. The sink stays
// closed until Open. The color cache starts black.
func New(sink transport.Sink, ledCount int, log zerolog.Logger) (*Controller, error) {
	if ledCount < 1 || ledCount > frame.MaxLeds {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrLedCount, ledCount, frame.MaxLeds)
	}
	buf, err := frame.New(ledCount)
	if err != nil {
		return nil, err
	}
	return &Controller{
		sink:    sink,
		buf:     buf,
		count:   ledCount,
		current: make([]frame.Color, ledCount),
		log:     log,
	}, nil
}

// Count returns the strip length the controller was built for.
func (c *Controller) Count() int { return c.count }

// SetFrameObserver registers fn to receive a copy of every transmitted
// frame. Pass nil to remove the observer.
func (c *Controller) SetFrameObserver(fn func([]byte)) { c.observer = fn }

// Open acquires the sink. Calling it on an open controller is a no-op
// returning nil; an unreachable or busy device comes back as an error,
// never a panic.
func (c *Controller) Open() error {
	if c.isOpen {
		return nil
	}
	if err := c.sink.Open(); err != nil {
		return fmt.Errorf("open sink: %w", err)
	}
	c.isOpen = true
	c.log.Debug().Int("leds", c.count).Msg("sink opened")
	return nil
}

// Close releases the sink. Safe on a controller that was never opened.
func (c *Controller) Close() error {
	if !c.isOpen {
		return nil
	}
	c.isOpen = false
	return c.sink.Close()
}

// Fill sets the whole strip to one color.
func (c *Controller) Fill(col frame.Color) error {
	colors := make([]frame.Color, c.count)
	for i := range colors {
		colors[i] = col
	}
	return c.WriteColors(colors)
}

// Clear turns the strip off.
func (c *Controller) Clear() error {
	return c.Fill(frame.Black)
}

// SetLed changes a single LED, keeping the rest of the strip at its
// last transmitted colors. The full frame is retransmitted.
func (c *Controller) SetLed(index int, col frame.Color) error {
	if index < 0 || index >= c.count {
		return fmt.Errorf("%w: %d (strip has %d)", ErrIndexRange, index, c.count)
	}
	colors := make([]frame.Color, c.count)
	copy(colors, c.current)
	colors[index] = col
	return c.WriteColors(colors)
}

// Rainbow paints the full hue circle across the strip. offset rotates
// the pattern by whole LEDs; hues past 360 wrap inside the conversion.
func (c *Controller) Rainbow(offset int) error {
	colors := make([]frame.Color, c.count)
	for i := range colors {
		hue := float64(i+offset) / float64(c.count) * 360
		colors[i] = hsvToRGB(hue, 1, 1)
	}
	return c.WriteColors(colors)
}

// Gradient interpolates linearly from start to end along the strip.
// Channels are truncated, not rounded. A one-LED strip shows start.
func (c *Controller) Gradient(start, end frame.Color) error {
	colors := make([]frame.Color, c.count)
	for i := range colors {
		ratio := 0.0
		if c.count > 1 {
			ratio = float64(i) / float64(c.count-1)
		}
		colors[i] = lerp(start, end, ratio)
	}
	return c.WriteColors(colors)
}

// WriteColors transmits one frame covering the whole strip. The color
// cache and the frame payload are committed only after the sink
// accepted the frame, so a failed write never changes what SetLed sees.
func (c *Controller) WriteColors(colors []frame.Color) error {
	if len(colors) != c.count {
		return fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(colors), c.count)
	}
	if !c.isOpen {
		return ErrNotOpen
	}
	for i, col := range colors {
		c.buf.SetPixel(i, col)
	}
	if err := c.sink.Write(c.buf.Bytes()); err != nil {
		c.log.Warn().Err(err).Msg("frame write failed")
		return fmt.Errorf("write frame: %w", err)
	}
	copy(c.current, colors)
	if c.observer != nil {
		c.observer(append([]byte(nil), c.buf.Bytes()...))
	}
	return nil
}

func lerp(start, end frame.Color, ratio float64) frame.Color {
	return frame.Color{
		R: lerpChan(start.R, end.R, ratio),
		G: lerpChan(start.G, end.G, ratio),
		B: lerpChan(start.B, end.B, ratio),
	}
}

func lerpChan(a, b uint8, ratio float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*ratio)
}
