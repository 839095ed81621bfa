//go:build linux

package touch

import (
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

type absInfo struct {
	Value      int32
	Min        int32
	Max        int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// ioctl request encoding, see asm-generic/ioctl.h.
const (
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

// EVIOCGABS(abs) = _IOR('E', 0x40 + abs, struct input_absinfo)
func eviocgabs(code int) uintptr {
	return ioc(iocRead, 'E', uintptr(0x40+code), unsafe.Sizeof(absInfo{}))
}

// EVIOCGRAB = _IOW('E', 0x90, int)
var eviocgrab = ioc(iocWrite, 'E', 0x90, unsafe.Sizeof(int32(0)))

var eventSize = int(unsafe.Sizeof(unix.Timeval{})) + 8

func ioctl(fd, req uintptr, arg unsafe.Pointer) error {
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// rangeOf prefers the multitouch axis and falls back to the single-touch one.
func rangeOf(fd uintptr, mt, st int) (axisRange, error) {
	var info absInfo
	if err := ioctl(fd, eviocgabs(mt), unsafe.Pointer(&info)); err == nil && info.Max > info.Min {
		return axisRange{min: info.Min, max: info.Max}, nil
	}
	if err := ioctl(fd, eviocgabs(st), unsafe.Pointer(&info)); err != nil {
		return axisRange{}, err
	}
	return axisRange{min: info.Min, max: info.Max}, nil
}

// Open opens the evdev node named in cfg and reads its axis ranges.
func Open(cfg Config, logger *slog.Logger) (*Panel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	f, err := os.Open(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("touch: %w", err)
	}
	rc, err := f.SyscallConn()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("touch: %w", err)
	}

	var xr, yr axisRange
	var ioErr error
	ctlErr := rc.Control(func(fd uintptr) {
		if xr, ioErr = rangeOf(fd, absMTPositionX, absX); ioErr != nil {
			return
		}
		if yr, ioErr = rangeOf(fd, absMTPositionY, absY); ioErr != nil {
			return
		}
		if cfg.Grab {
			one := int32(1)
			ioErr = ioctl(fd, eviocgrab, unsafe.Pointer(&one))
		}
	})
	if ctlErr == nil {
		ctlErr = ioErr
	}
	if ctlErr != nil {
		_ = f.Close()
		return nil, fmt.Errorf("touch: %s is not an absolute pointer device: %w", cfg.Device, ctlErr)
	}

	logger.Info("touch panel opened",
		"device", cfg.Device,
		"x", fmt.Sprintf("%d..%d", xr.min, xr.max),
		"y", fmt.Sprintf("%d..%d", yr.min, yr.max),
		"screen", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	return newPanel(f, eventSize, newTracker(cfg, xr, yr), logger), nil
}
