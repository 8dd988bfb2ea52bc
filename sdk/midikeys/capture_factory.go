package midikeys

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/keytone/midikeys/internal/input/inputlinux"
	"github.com/keytone/midikeys/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no key-capture
// or MIDI-output implementation.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// captureInitializers maps OS names to key-capture client initializers.
var captureInitializers = map[string]func(*contracts.SessionOptions) (contracts.KeyCaptureClient, error){
	"linux": inputlinux.NewKeyCaptureClient, // Linux evdev capture.
}

// NewKeyCaptureClient creates the key-capture collaborator for the current
// operating system. It is optional: callers with their own input source can
// feed Session.Submit directly.
func NewKeyCaptureClient(opts ...contracts.Option) (contracts.KeyCaptureClient, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	if initializer, exists := captureInitializers[runtime.GOOS]; exists {
		return initializer(&options)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}
