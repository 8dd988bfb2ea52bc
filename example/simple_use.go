package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/keytone/midikeys/internal/logger"
	"github.com/keytone/midikeys/sdk/contracts"
	"github.com/keytone/midikeys/sdk/midikeys"
)

func main() {
	log := logger.NewZapLogger()

	session, err := midikeys.NewSession(
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithSinkConfig(contracts.SinkConfig{
			ClientName: "midikeys",
			Virtual:    true,
		}),
	)
	if err != nil {
		log.Error("Failed to start translation session", log.Field().Error("error", err))
		return
	}

	capture, err := midikeys.NewKeyCaptureClient(
		contracts.WithLogger(log),
	)
	if err != nil {
		log.Error("Failed to initialize key capture", log.Field().Error("error", err))
		_ = session.Stop()
		return
	}

	devices, err := capture.ListDevices()
	if err != nil || len(devices) == 0 {
		log.Error("No input devices found or error listing devices", log.Field().Error("error", err))
		_ = session.Stop()
		return
	}
	fmt.Println("Available input devices:")
	for i, device := range devices {
		fmt.Printf("  [%d] %s (%s)\n", i, device.Name, device.Path)
	}

	if err = capture.SelectDevice(0); err != nil {
		log.Error("Failed to select input device", log.Field().Error("error", err))
		_ = session.Stop()
		return
	}

	eventChannel := make(chan contracts.KeyEvent, 100)
	go func() {
		for event := range eventChannel {
			if err := session.Submit(event); err != nil {
				return
			}
		}
	}()

	capture.StartCapture(eventChannel)

	fmt.Println("Playing keystrokes as MIDI... Press Ctrl+C to exit.")
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	// Stop capture first, then the session, so every held note gets its
	// note-off before the transport goes away.
	if err := capture.Stop(); err != nil {
		log.Error("Failed to stop capture", log.Field().Error("error", err))
	}
	if err := session.Stop(); err != nil {
		log.Error("Failed to stop session", log.Field().Error("error", err))
	}
}
