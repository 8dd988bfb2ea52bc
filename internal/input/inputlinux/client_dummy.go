//go:build !linux
// +build !linux

package inputlinux

import (
	"fmt"

	"github.com/keytone/midikeys/sdk/contracts"
)

type DummyClient struct {
	logger contracts.Logger
}

func NewKeyCaptureClient(options *contracts.SessionOptions) (contracts.KeyCaptureClient, error) {
	options.Logger.Info("Using dummy key capture client for non-Linux system")
	return &DummyClient{
		logger: options.Logger,
	}, nil
}

func (c *DummyClient) ListDevices() ([]contracts.DeviceInfo, error) {
	c.logger.Warn("ListDevices called on dummy key capture client")
	return nil, fmt.Errorf("evdev capture is not available on this platform")
}

func (c *DummyClient) SelectDevice(deviceID int) error {
	c.logger.Warn("SelectDevice called on dummy key capture client")
	return fmt.Errorf("evdev capture is not available on this platform")
}

func (c *DummyClient) StartCapture(eventChannel chan contracts.KeyEvent) {
	c.logger.Warn("StartCapture called on dummy key capture client")
}

func (c *DummyClient) Stop() error {
	c.logger.Warn("Stop called on dummy key capture client")
	return nil
}
