package contracts

// DeviceInfo describes an input device that can act as a key source.
type DeviceInfo struct {
	Name     string // Human-readable device name.
	Path     string // Device node path (e.g. /dev/input/event3 on Linux).
	Physical string // Physical topology string, if the platform reports one.
}

// KeyCaptureClient captures raw key events from a physical keyboard and
// delivers them, in arrival order, to the channel given to StartCapture.
// Auto-repeat transitions are filtered before delivery.
type KeyCaptureClient interface {
	Stop() error                             // Stops capture and releases the device.
	ListDevices() ([]DeviceInfo, error)      // Lists candidate input devices.
	SelectDevice(deviceID int) error         // Opens the device at the listed index.
	StartCapture(eventChannel chan KeyEvent) // Begins delivering key events.
}
