package contracts

// Tuning holds the performance-state clamp ranges and step sizes. The zero
// value is replaced by defaults when a session is created; the numbers here
// are conventions, not protocol constants.
type Tuning struct {
	OctaveRange     int   // Octave offset is clamped to [-OctaveRange, +OctaveRange].
	VelocityStep    uint8 // Amount added/removed per velocity modifier press.
	ModulationStep  uint8 // Amount added/removed per modulation modifier press.
	InitialVelocity uint8 // Velocity at session start, clamped to [1,127].
}

// CaptureConfig holds configuration for the key-capture client.
type CaptureConfig struct {
	DevicePath string // Device to open directly, bypassing SelectDevice.
	Grab       bool   // Take an exclusive grab so keystrokes do not reach other consumers.
}

// SinkConfig holds configuration for platform-constructed event sinks.
type SinkConfig struct {
	ClientName string // Name the transport client registers under.
	PortName   string // Output port to connect to; empty selects the first available.
	Virtual    bool   // Create a virtual output port instead of connecting to one.
}

// SessionOptions defines the configuration options for a translation session.
type SessionOptions struct {
	Logger         Logger                 // Logger for logging events and errors.
	LogLevel       LogLevel               // Level of logging to use.
	Sink           EventSink              // Output boundary; nil selects a platform sink.
	Mapping        MappingTable           // Key→note table; nil selects the built-in layout.
	Modifiers      map[Key]ModifierAction // Modifier-key assignments; nil selects the defaults.
	Tuning         *Tuning                // Performance-state tuning; nil selects the defaults.
	QueueSize      int                    // Capacity of the raw-event intake queue.
	SinkBufferSize int                    // Capacity of the outbound event buffer.
	CaptureConfig  *CaptureConfig         // Configuration for key capture clients.
	SinkConfig     *SinkConfig            // Configuration for platform sinks.
}

// Option is a function that modifies SessionOptions.
type Option func(*SessionOptions)

// WithLogger sets the logger for the session.
func WithLogger(l Logger) Option {
	return func(opts *SessionOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the session.
func WithLogLevel(level LogLevel) Option {
	return func(opts *SessionOptions) {
		opts.LogLevel = level
	}
}

// WithEventSink sets the MIDI output boundary for the session.
func WithEventSink(sink EventSink) Option {
	return func(opts *SessionOptions) {
		opts.Sink = sink
	}
}

// WithMapping sets the key→note mapping table for the session.
func WithMapping(table MappingTable) Option {
	return func(opts *SessionOptions) {
		opts.Mapping = table
	}
}

// WithModifiers sets the modifier-key assignments for the session.
func WithModifiers(modifiers map[Key]ModifierAction) Option {
	return func(opts *SessionOptions) {
		opts.Modifiers = modifiers
	}
}

// WithTuning sets the performance-state tuning for the session.
func WithTuning(tuning Tuning) Option {
	return func(opts *SessionOptions) {
		opts.Tuning = &tuning
	}
}

// WithQueueSize sets the capacity of the raw-event intake queue.
func WithQueueSize(n int) Option {
	return func(opts *SessionOptions) {
		opts.QueueSize = n
	}
}

// WithSinkBufferSize sets the capacity of the outbound event buffer.
func WithSinkBufferSize(n int) Option {
	return func(opts *SessionOptions) {
		opts.SinkBufferSize = n
	}
}

// WithCaptureConfig sets the key-capture configuration.
func WithCaptureConfig(config CaptureConfig) Option {
	return func(opts *SessionOptions) {
		opts.CaptureConfig = &config
	}
}

// WithSinkConfig sets the platform sink configuration.
func WithSinkConfig(config SinkConfig) Option {
	return func(opts *SessionOptions) {
		opts.SinkConfig = &config
	}
}
