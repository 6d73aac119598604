// Command touchpadctl grabs a touchpad device, feeds its events through
// the touchpad core, and replays the resulting callbacks onto a uinput
// virtual mouse. It is a thin demonstration of wiring the core to real
// device I/O; device discovery, configuration and windowing-system
// bindings are intentionally out of the core package itself.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"
	"unsafe"

	"github.com/bendahl/uinput"
	evdev "github.com/gvalkov/golang-evdev"
	"github.com/rs/zerolog"

	"github.com/gxtp/touchpad"
)

var (
	deviceFlag = flag.String("device", "", "path to the touchpad event device (skips auto-discovery)")
	keyword    = flag.String("name", "touchpad", "case-insensitive substring to match against device names")
	verbose    = flag.Bool("v", false, "enable debug logging")
)

// findDevice mirrors the discovery pattern used throughout the retrieved
// evdev tools in this pack: list every input device and pick the first
// whose name contains the keyword.
func findDevice(keyword string) (string, error) {
	devices, err := evdev.ListInputDevices()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, dev := range devices {
		if strings.Contains(strings.ToLower(dev.Name), strings.ToLower(keyword)) {
			return dev.Fn, nil
		}
	}
	return "", fmt.Errorf("no device matching %q found", keyword)
}

// absInfo mirrors struct input_absinfo from linux/input.h.
type absInfo struct {
	Value, Minimum, Maximum, Fuzz, Flat, Resolution int32
}

const (
	iocNRBits    = 8
	iocTypeBits  = 8
	iocSizeBits  = 14
	iocNRShift   = 0
	iocTypeShift = iocNRShift + iocNRBits
	iocSizeShift = iocTypeShift + iocTypeBits
	iocDirShift  = iocSizeShift + iocSizeBits
	iocRead      = 2
)

func ior(ioctlType, nr, size uintptr) uintptr {
	return (iocRead << iocDirShift) | (ioctlType << iocTypeShift) | (nr << iocNRShift) | (size << iocSizeShift)
}

// eviocgabs computes the EVIOCGABS(abs) request code for a given absolute
// axis, the same _IOR('E', 0x40+abs, struct input_absinfo) macro the
// kernel headers define.
func eviocgabs(abs uintptr) uintptr {
	return ior('E', 0x40+abs, unsafe.Sizeof(absInfo{}))
}

// eviocgbit computes EVIOCGBIT(ev, len), the request used to read a
// capability bitmap (which keys/axes the device supports) of a given
// event type.
func eviocgbit(ev, length uintptr) uintptr {
	return ior('E', 0x20+ev, length)
}

func hasKeyCapability(fd uintptr, code int) bool {
	const bufLen = 96
	var buf [bufLen]byte
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd,
		eviocgbit(uintptr(evdev.EV_KEY), uintptr(bufLen)), uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return false
	}
	byteIdx := code / 8
	if byteIdx >= bufLen {
		return false
	}
	return buf[byteIdx]&(1<<uint(code%8)) != 0
}

func queryAbsRange(fd uintptr, code uintptr) (min, max int, err error) {
	var info absInfo
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, fd, eviocgabs(code), uintptr(unsafe.Pointer(&info)))
	if errno != 0 {
		return 0, 0, errno
	}
	return int(info.Minimum), int(info.Maximum), nil
}

func probeCapabilities(dev *evdev.InputDevice) touchpad.DeviceCapabilities {
	fd := dev.File.Fd()

	caps := touchpad.DeviceCapabilities{
		XMin: 0, XMax: 1,
		YMin: 0, YMax: 1,
		MaxSlots: touchpad.MaxTouchpoints,
	}
	if xmin, xmax, err := queryAbsRange(fd, evdev.ABS_MT_POSITION_X); err == nil {
		caps.XMin, caps.XMax = xmin, xmax
	}
	if ymin, ymax, err := queryAbsRange(fd, evdev.ABS_MT_POSITION_Y); err == nil {
		caps.YMin, caps.YMax = ymin, ymax
	}
	if slotMin, slotMax, err := queryAbsRange(fd, evdev.ABS_MT_SLOT); err == nil {
		_ = slotMin
		if slotMax+1 > 0 && slotMax+1 <= touchpad.MaxTouchpoints {
			caps.MaxSlots = slotMax + 1
		}
	}

	caps.HasRightButton = hasKeyCapability(fd, evdev.BTN_RIGHT)

	return caps
}

// uinputSink implements touchpad.Interface by replaying high-level
// callbacks onto a uinput relative-mouse device.
type uinputSink struct {
	touchpad.NopInterface
	mouse uinput.Mouse

	scrollAccum float64
}

func (s *uinputSink) Motion(tp *touchpad.Touchpad, userdata interface{}, dx, dy int) {
	if dx != 0 {
		if dx > 0 {
			s.mouse.MoveRight(int32(dx))
		} else {
			s.mouse.MoveLeft(int32(-dx))
		}
	}
	if dy != 0 {
		if dy > 0 {
			s.mouse.MoveDown(int32(dy))
		} else {
			s.mouse.MoveUp(int32(-dy))
		}
	}
}

func (s *uinputSink) Button(tp *touchpad.Touchpad, userdata interface{}, code uint16, isPress bool) {
	switch code {
	case evdev.BTN_RIGHT:
		if isPress {
			s.mouse.RightPress()
		} else {
			s.mouse.RightRelease()
		}
	default:
		if isPress {
			s.mouse.LeftPress()
		} else {
			s.mouse.LeftRelease()
		}
	}
}

func (s *uinputSink) Tap(tp *touchpad.Touchpad, userdata interface{}, fingers int, isPress bool) {
	code := evdev.BTN_LEFT
	switch fingers {
	case 2:
		code = evdev.BTN_RIGHT
	case 3:
		code = evdev.BTN_MIDDLE
	}
	s.Button(tp, userdata, uint16(code), isPress)
}

func (s *uinputSink) Scroll(tp *touchpad.Touchpad, userdata interface{}, direction touchpad.ScrollDirection, units float64) {
	if units == 0 {
		s.scrollAccum = 0
		return
	}
	s.scrollAccum += units
	for s.scrollAccum >= 1 {
		s.mouse.Wheel(direction == touchpad.ScrollHorizontal, 1)
		s.scrollAccum--
	}
	for s.scrollAccum <= -1 {
		s.mouse.Wheel(direction == touchpad.ScrollHorizontal, -1)
		s.scrollAccum++
	}
}

func (s *uinputSink) RegisterTimer(tp *touchpad.Touchpad, userdata interface{}, now, next uint32) {
	// Advisory only; the loop below polls NextTimeout() directly.
}

func millisFromTimeval(tv syscall.Timeval) uint32 {
	return uint32(tv.Sec*1000 + tv.Usec/1000)
}

func main() {
	flag.Parse()

	devicePath := *deviceFlag
	if devicePath == "" {
		found, err := findDevice(*keyword)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		devicePath = found
	}

	dev, err := evdev.Open(devicePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", devicePath, err)
		os.Exit(1)
	}
	if err := dev.Grab(); err != nil {
		fmt.Fprintf(os.Stderr, "grab %s: %v\n", devicePath, err)
		os.Exit(1)
	}
	defer dev.Release()

	mouse, err := uinput.CreateMouse("/dev/uinput", []byte("touchpadctl"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "create uinput mouse: %v\n", err)
		os.Exit(1)
	}
	defer mouse.Close()

	logger := touchpad.NewLogger()
	if !*verbose {
		logger = logger.Level(zerolog.InfoLevel)
	}

	caps := probeCapabilities(dev)
	sink := &uinputSink{mouse: mouse}
	tp := touchpad.NewTouchpad(caps, sink, nil, logger)

	fmt.Printf("touchpadctl: reading %s (clickpad=%v, slots=%d)\n", devicePath, !caps.HasRightButton, caps.MaxSlots)

	for {
		events, err := dev.Read()
		if err != nil {
			fmt.Fprintf(os.Stderr, "read: %v\n", err)
			break
		}
		for _, ev := range events {
			tp.HandleEvent(touchpad.RawEvent{
				Type:   ev.Type,
				Code:   ev.Code,
				Value:  ev.Value,
				Millis: millisFromTimeval(ev.Time),
			})
		}

		if next := tp.NextTimeout(); next != 0 {
			now := millisFromTimeval(currentTimeval())
			if now >= next {
				tp.HandleTimers(now)
			}
		}
	}
}

func currentTimeval() syscall.Timeval {
	var tv syscall.Timeval
	syscall.Gettimeofday(&tv)
	return tv
}
