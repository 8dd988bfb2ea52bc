package contracts

// Key is an opaque, stable identifier for a physical key, equivalent to a
// scancode. Values are produced by the input-capture layer (on Linux these
// are evdev key codes) and are only ever compared for equality.
type Key uint32

// KeyEvent is a raw key transition delivered by the input-capture layer.
type KeyEvent struct {
	Key       Key    // Key identifies the physical key.
	Pressed   bool   // Pressed is true for key-down, false for key-up.
	Timestamp uint64 // Timestamp is the event time in nanoseconds.
}
