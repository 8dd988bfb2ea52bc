package contracts

// EventSink is the output boundary to the MIDI transport. Send reports
// transport failures to the caller; implementations must not retry
// internally. A sink may block in Send, so callers that cannot afford to
// stall wrap the sink in a buffer.
type EventSink interface {
	Send(event MidiEvent) error
	Close() error
}
