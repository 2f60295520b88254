package frame

import "fmt"

// Color is one LED's worth of payload in strip order.
type Color struct {
	R, G, B uint8
}

// Black is the off state for a single LED.
var Black = Color{}

// HeaderLen is the fixed Adalight preamble size: "Ada", two reserved
// bytes and the low count byte.
const HeaderLen = 6

// MaxLeds is the largest strip the wire format can address. The header
// carries a single count byte; the two bytes before it are reserved and
// always zero in this protocol variant.
const MaxLeds = 255

// Buffer holds one complete Adalight frame. The header is written once
// at construction; only the payload region changes afterwards.
type Buffer struct {
	count int
	data  []byte
}

// New allocates a frame for ledCount LEDs and bakes the header.
func New(ledCount int) (*Buffer, error) {
	if ledCount < 1 || ledCount > MaxLeds {
		return nil, fmt.Errorf("invalid LED count: %d (want 1..%d)", ledCount, MaxLeds)
	}
	b := &Buffer{
		count: ledCount,
		data:  make([]byte, HeaderLen+3*ledCount),
	}
	b.data[0] = 'A'
	b.data[1] = 'd'
	b.data[2] = 'a'
	b.data[5] = byte(ledCount)
	return b, nil
}

// Count returns the LED count the frame was sized for.
func (b *Buffer) Count() int { return b.count }

// SetPixel writes one RGB triple into the payload. Bounds are the
// caller's job; a bad index is a programming error, not a wire error.
func (b *Buffer) SetPixel(index int, c Color) {
	if index < 0 || index >= b.count {
		panic(fmt.Sprintf("frame: pixel index %d out of range [0,%d)", index, b.count))
	}
	off := HeaderLen + 3*index
	b.data[off+0] = c.R
	b.data[off+1] = c.G
	b.data[off+2] = c.B
}

// Bytes returns the full frame for transmission. The slice aliases the
// buffer; callers must only read it.
func (b *Buffer) Bytes() []byte { return b.data }
