//go:build linux
// +build linux

// Package inputlinux captures raw keyboard events from the Linux evdev
// interface and delivers them as key events.
package inputlinux

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/keytone/midikeys/sdk/contracts"
)

// Error definitions for evdev connection and handling issues.
var (
	ErrNoInputDevices    = errors.New("no input devices found")
	ErrInvalidDevice     = errors.New("invalid input device")
	ErrNoDeviceSelected  = errors.New("no input device selected")
	ErrDeviceOpenFailure = errors.New("error opening input device")
)

// evdev ioctl requests (64-bit layout).
const (
	eviocgrab        = 0x40044590 // EVIOCGRAB: exclusive access grab
	eviocgname       = 0x81004506 // EVIOCGNAME(256): device name
	eviocgphys       = 0x81004507 // EVIOCGPHYS(256): physical topology
	ioctlStringLimit = 256
)

// evdev event constants.
const (
	evKey            = 0x01 // EV_KEY event type
	keyValueRelease  = 0
	keyValuePress    = 1
	keyValueAutoRept = 2
)

// inputEvent mirrors struct input_event on 64-bit Linux.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

const inputEventSize = 24

// Client captures key events from one evdev device node.
type Client struct {
	logger       contracts.Logger
	grab         bool
	eventChannel atomic.Value // Atomic storage for the event channel.
	mu           sync.Mutex
	file         *os.File
	capturing    bool
	done         chan struct{}
	wg           sync.WaitGroup
	stopOnce     sync.Once
}

// NewKeyCaptureClient initializes a capture client. When CaptureConfig
// specifies a device path it is opened immediately; otherwise a device must
// be chosen with SelectDevice before capture starts.
func NewKeyCaptureClient(options *contracts.SessionOptions) (contracts.KeyCaptureClient, error) {
	config := options.CaptureConfig
	if config == nil {
		config = &contracts.CaptureConfig{}
	}

	client := &Client{
		logger: options.Logger,
		grab:   config.Grab,
	}

	if config.DevicePath != "" {
		if err := client.openPath(config.DevicePath); err != nil {
			return nil, err
		}
	}

	options.Logger.Info("key capture client created")
	return client, nil
}

// ListDevices enumerates /dev/input/event* nodes with their reported names.
func (c *Client) ListDevices() ([]contracts.DeviceInfo, error) {
	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil {
		return nil, fmt.Errorf("error listing input devices: %w", err)
	}
	sort.Strings(paths)

	var devices []contracts.DeviceInfo
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			// Devices we cannot open (permissions) are simply skipped.
			continue
		}
		devices = append(devices, contracts.DeviceInfo{
			Name:     ioctlString(fd, eviocgname),
			Path:     path,
			Physical: ioctlString(fd, eviocgphys),
		})
		_ = unix.Close(fd)
	}

	if len(devices) == 0 {
		c.logger.Warn(ErrNoInputDevices.Error())
		return nil, ErrNoInputDevices
	}
	return devices, nil
}

// SelectDevice opens the device at the given index of ListDevices. Any
// previously opened device is released first.
func (c *Client) SelectDevice(deviceID int) error {
	devices, err := c.ListDevices()
	if err != nil {
		return err
	}
	if deviceID < 0 || deviceID >= len(devices) {
		c.logger.Error(ErrInvalidDevice.Error())
		return ErrInvalidDevice
	}

	c.logger.Info("input device selected",
		c.logger.Field().Int("deviceID", deviceID),
		c.logger.Field().String("deviceName", devices[deviceID].Name))

	return c.openPath(devices[deviceID].Path)
}

func (c *Client) openPath(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.file != nil {
		c.releaseDevice()
	}

	file, err := os.Open(path)
	if err != nil {
		c.logger.Error(ErrDeviceOpenFailure.Error(), c.logger.Field().Error("error", err))
		return fmt.Errorf("%w: %v", ErrDeviceOpenFailure, err)
	}

	if c.grab {
		if err := unix.IoctlSetInt(int(file.Fd()), eviocgrab, 1); err != nil {
			_ = file.Close()
			return fmt.Errorf("grab %s: %w", path, err)
		}
	}

	c.file = file
	c.logger.Info("input device opened", c.logger.Field().String("path", path))
	return nil
}

// StartCapture begins reading key events and delivering them to
// eventChannel. Auto-repeat transitions are filtered; delivery preserves
// arrival order.
func (c *Client) StartCapture(eventChannel chan contracts.KeyEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if eventChannel == nil {
		c.logger.Error("StartCapture called with nil eventChannel")
		return
	}
	if c.file == nil {
		c.logger.Error(ErrNoDeviceSelected.Error())
		return
	}
	if c.capturing {
		c.logger.Warn("capture already started")
		return
	}

	c.logger.Info("starting key event capture")
	c.eventChannel.Store(eventChannel)
	c.capturing = true
	c.done = make(chan struct{})

	c.wg.Add(1)
	go c.readLoop(c.file, c.done)
}

func (c *Client) readLoop(file *os.File, done chan struct{}) {
	defer c.wg.Done()

	buf := make([]byte, inputEventSize)
	for {
		if _, err := file.Read(buf); err != nil {
			if !errors.Is(err, os.ErrClosed) {
				c.logger.Error("input read failed", c.logger.Field().Error("error", err))
			}
			return
		}

		event := decodeEvent(buf)
		if event.Type != evKey || event.Value == keyValueAutoRept {
			continue
		}

		eventChannel, _ := c.eventChannel.Load().(chan contracts.KeyEvent)
		if eventChannel == nil {
			continue
		}
		// A plain select-default drop here would orphan key releases, so a
		// slow consumer is waited on until Stop tears the client down.
		select {
		case eventChannel <- contracts.KeyEvent{
			Key:       contracts.Key(event.Code),
			Pressed:   event.Value == keyValuePress,
			Timestamp: uint64(event.Sec)*1e9 + uint64(event.Usec)*1e3,
		}:
		case <-done:
			return
		}
	}
}

// Stop halts capture, releases the grab, and waits for the reader to exit.
// It only executes once, even if called multiple times.
func (c *Client) Stop() error {
	c.stopOnce.Do(func() {
		c.logger.Info("stopping key event capture")
		c.mu.Lock()
		c.capturing = false
		if c.done != nil {
			close(c.done)
		}
		c.releaseDevice()
		c.mu.Unlock()
		c.wg.Wait()
	})
	return nil
}

// releaseDevice must be called with c.mu held.
func (c *Client) releaseDevice() {
	if c.file == nil {
		return
	}
	if c.grab {
		_ = unix.IoctlSetInt(int(c.file.Fd()), eviocgrab, 0)
	}
	_ = c.file.Close()
	c.file = nil
}

func decodeEvent(buf []byte) inputEvent {
	return inputEvent{
		Sec:   int64(binary.LittleEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.LittleEndian.Uint64(buf[8:16])),
		Type:  binary.LittleEndian.Uint16(buf[16:18]),
		Code:  binary.LittleEndian.Uint16(buf[18:20]),
		Value: int32(binary.LittleEndian.Uint32(buf[20:24])),
	}
}

func ioctlString(fd int, request uint) string {
	var buf [ioctlStringLimit]byte
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(request), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return ""
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf[:])
}
