package midikeys

import (
	"fmt"
	"runtime"

	"github.com/keytone/midikeys/internal/sink/sinkdarwin"
	"github.com/keytone/midikeys/internal/sink/sinkrtmidi"
	"github.com/keytone/midikeys/internal/sink/sinkwindows"
	"github.com/keytone/midikeys/sdk/contracts"
)

// sinkInitializers maps OS names to MIDI output sink initializers.
var sinkInitializers = map[string]func(*contracts.SessionOptions) (contracts.EventSink, error){
	"darwin":  sinkdarwin.NewEventSink,  // macOS CoreMIDI output.
	"windows": sinkwindows.NewEventSink, // Windows winmm output.
	"linux":   sinkrtmidi.NewEventSink,  // rtmidi (ALSA/JACK) output.
}

// newPlatformSink constructs the MIDI transport for the current operating
// system, honoring SinkConfig for port selection and virtual ports.
func newPlatformSink(options *contracts.SessionOptions) (contracts.EventSink, error) {
	if initializer, exists := sinkInitializers[runtime.GOOS]; exists {
		return initializer(options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
