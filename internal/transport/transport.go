package transport

// Sink abstracts the physical byte transport the controller writes
// frames to. Implementations own their handle exclusively; Close must
// be a safe no-op when Open never succeeded.
type Sink interface {
	// Open acquires the underlying device.
	Open() error
	// Write pushes one complete frame. A short write is an error.
	Write(p []byte) error
	// Close releases the device.
	Close() error
}
