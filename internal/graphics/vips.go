package graphics

import (
	"errors"
	"sync"

	"media-inspector/internal/logging"

	"github.com/davidbyttow/govips/v2/vips"
)

// ErrUnavailable is returned when libvips is not running.
var ErrUnavailable = errors.New("libvips not available")

// errRestart is returned by Start once libvips has been shut down; libvips
// cannot be started again in the same process.
var errRestart = errors.New("libvips cannot be restarted after shutdown")

var (
	vipsMu       sync.Mutex
	vipsRunning  bool
	vipsShutdown bool
)

// Settings tunes the libvips runtime.
type Settings struct {
	Concurrency  int
	MaxCacheMem  int
	MaxCacheSize int
}

// Subsystem is the graphics subsystem backed by libvips.
type Subsystem struct {
	settings Settings
}

// NewSubsystem creates the graphics subsystem.
func NewSubsystem(settings Settings) *Subsystem {
	return &Subsystem{settings: settings}
}

// Name implements lifecycle.Subsystem.
func (s *Subsystem) Name() string {
	return "graphics"
}

// Start implements lifecycle.Subsystem.
func (s *Subsystem) Start() error {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if vipsRunning {
		return nil
	}
	if vipsShutdown {
		return errRestart
	}

	// Logging must be configured before Startup so the level applies to
	// messages emitted while libvips loads its modules.
	level, handler := logBridge(logging.GetLevel())
	vips.LoggingSettings(handler, level)

	vips.Startup(&vips.Config{
		ConcurrencyLevel: s.settings.Concurrency,
		MaxCacheMem:      s.settings.MaxCacheMem,
		MaxCacheSize:     s.settings.MaxCacheSize,
		ReportLeaks:      false,
		CacheTrace:       false,
		CollectStats:     false,
	})

	vipsRunning = true
	logging.Info("libvips initialized successfully (version: %s)", vips.Version)
	return nil
}

// Stop implements lifecycle.Subsystem.
func (s *Subsystem) Stop() {
	vipsMu.Lock()
	defer vipsMu.Unlock()

	if !vipsRunning {
		return
	}
	vips.Shutdown()
	vipsRunning = false
	vipsShutdown = true
	logging.Info("libvips shutdown complete")
}

// Running reports whether libvips is started.
func Running() bool {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	return vipsRunning
}

// logBridge maps the library log level to the libvips threshold and a
// handler that forwards libvips messages into the logging package.
func logBridge(appLevel logging.LogLevel) (vips.LogLevel, func(string, vips.LogLevel, string)) {
	switch appLevel {
	case logging.LevelDebug:
		return vips.LogLevelInfo, func(domain string, level vips.LogLevel, msg string) {
			switch level {
			case vips.LogLevelError, vips.LogLevelCritical:
				logging.Error("[%s] %s", domain, msg)
			case vips.LogLevelWarning:
				logging.Warn("[%s] %s", domain, msg)
			default:
				logging.Debug("[%s] %s", domain, msg)
			}
		}
	case logging.LevelInfo:
		return vips.LogLevelWarning, func(domain string, level vips.LogLevel, msg string) {
			switch level {
			case vips.LogLevelError, vips.LogLevelCritical:
				logging.Error("[%s] %s", domain, msg)
			case vips.LogLevelWarning:
				logging.Warn("[%s] %s", domain, msg)
			}
		}
	case logging.LevelWarn:
		return vips.LogLevelError, func(domain string, level vips.LogLevel, msg string) {
			if level >= vips.LogLevelError {
				logging.Error("[%s] %s", domain, msg)
			}
		}
	case logging.LevelError:
		return vips.LogLevelCritical, func(domain string, level vips.LogLevel, msg string) {
			if level >= vips.LogLevelCritical {
				logging.Error("[%s] %s", domain, msg)
			}
		}
	default:
		return vips.LogLevelWarning, func(domain string, level vips.LogLevel, msg string) {
			if level >= vips.LogLevelError {
				logging.Warn("[%s] %s", domain, msg)
			}
		}
	}
}
