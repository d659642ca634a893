package inspector

import (
	"fmt"
	"sync"
	"time"

	"media-inspector/internal/apperr"
	"media-inspector/internal/config"
	"media-inspector/internal/duration"
	"media-inspector/internal/filesystem"
	"media-inspector/internal/graphics"
	"media-inspector/internal/hasher"
	"media-inspector/internal/lifecycle"
	"media-inspector/internal/logging"
	"media-inspector/internal/mediatools"
	"media-inspector/internal/memory"
	"media-inspector/internal/metadata"
	"media-inspector/internal/metrics"
	"media-inspector/internal/thumbnail"
)

// FileMetadata is the normalized timestamp and size record of a file.
type FileMetadata = metadata.FileMetadata

// ThumbnailRequest describes one thumbnail to render.
type ThumbnailRequest = thumbnail.Request

// Error kinds reported by the result-typed operations. Use errors.Is.
var (
	ErrInitialization       = apperr.ErrInitialization
	ErrNotFound             = apperr.ErrNotFound
	ErrBind                 = apperr.ErrBind
	ErrEncode               = apperr.ErrEncode
	ErrIO                   = apperr.ErrIO
	ErrUnavailableAttribute = apperr.ErrUnavailableAttribute
)

// Inspector answers thumbnail, duration, metadata and checksum queries about
// media files. Query methods are safe for concurrent use and never panic.
type Inspector struct {
	cfg config.Config

	manager   *lifecycle.Manager
	generator *thumbnail.Generator
	prober    *duration.Prober
	metadata  *metadata.Reader
}

// New builds an Inspector. Subsystems are not started until Initialize.
func New(opts ...Option) *Inspector {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cfg config.Config
	if o.cfg != nil {
		cfg = *o.cfg
	} else {
		cfg = config.Load()
	}

	tools := mediatools.New(cfg.FFmpegPath, cfg.FFprobePath)

	subsystems := o.subsystems
	if subsystems == nil {
		subsystems = []lifecycle.Subsystem{
			memory.NewSubsystem(memory.Settings{ContainerLimit: cfg.MemoryLimit, Ratio: cfg.MemoryRatio}),
			tools,
			graphics.NewSubsystem(graphics.Settings{
				Concurrency:  cfg.VipsConcurrency,
				MaxCacheMem:  cfg.VipsMaxCacheMem,
				MaxCacheSize: cfg.VipsMaxCacheSize,
			}),
		}
	}

	provider := o.provider
	if provider == nil {
		provider = thumbnail.NewProvider(
			graphics.NewHandler(),
			thumbnail.NewImageHandler(),
			thumbnail.NewVideoHandler(tools),
		)
	}

	framework := o.framework
	if framework == nil {
		framework = duration.NewFFprobe(tools)
	}

	if cfg.MetricsEnabled {
		installMetrics()
	}

	return &Inspector{
		cfg:       cfg,
		manager:   lifecycle.NewManager(subsystems...),
		generator: thumbnail.NewGenerator(provider, o.encoders),
		prober:    duration.NewProber(framework),
		metadata:  metadata.NewReader(o.source),
	}
}

// Initialize starts the runtime, media and graphics subsystems exactly once.
// Failures are logged and the Inspector keeps serving in degraded mode.
// After Shutdown it does nothing.
func (in *Inspector) Initialize() {
	in.manager.Initialize()
}

// Shutdown stops the subsystems Initialize started. It is one-way: libvips
// cannot be restarted within a process, so a later Initialize is ignored and
// operations that need a subsystem keep failing. Call it only when the host
// is done with media inspection for the rest of the process; otherwise leave
// teardown to process exit.
func (in *Inspector) Shutdown() {
	in.manager.Shutdown()
}

// State reports the lifecycle state of the subsystems.
func (in *Inspector) State() lifecycle.State {
	return in.manager.State()
}

// Thumbnail renders req.Source as a PNG at req.Destination.
func (in *Inspector) Thumbnail(req ThumbnailRequest) (err error) {
	defer in.track(metrics.OpThumbnail, req.Source, time.Now(), &err)
	return in.generator.Generate(req)
}

// GetThumbnail renders src as a PNG at dst and reports success.
func (in *Inspector) GetThumbnail(src, dst string, size uint32) bool {
	return in.Thumbnail(ThumbnailRequest{Source: src, Destination: dst, Size: size}) == nil
}

// VideoDuration returns the presentation duration of path in milliseconds.
func (in *Inspector) VideoDuration(path string) (ms float64, err error) {
	defer in.track(metrics.OpDuration, path, time.Now(), &err)
	return in.prober.Probe(path)
}

// GetVideoDuration returns the duration of path in milliseconds, or 0 when
// it cannot be determined.
func (in *Inspector) GetVideoDuration(path string) float64 {
	ms, err := in.VideoDuration(path)
	if err != nil {
		return 0
	}
	return ms
}

// GetFileMetadata returns the Unix-epoch millisecond timestamps and size of path.
func (in *Inspector) GetFileMetadata(path string) (md FileMetadata, err error) {
	defer in.track(metrics.OpMetadata, path, time.Now(), &err)
	md, err = in.metadata.Read(path)
	if err != nil {
		return FileMetadata{}, err
	}
	return md, nil
}

// Checksum returns the xxHash64 digest of path's content, reading through a
// buffer of bufferSize bytes (0 selects the configured default).
func (in *Inspector) Checksum(path string, bufferSize uint64) (sum uint64, err error) {
	defer in.track(metrics.OpHash, path, time.Now(), &err)

	size := in.cfg.HashBufferSize
	if bufferSize > 0 {
		if bufferSize > uint64(maxBufferSize) {
			return 0, apperr.New(metrics.OpHash, path, apperr.ErrIO, fmt.Errorf("buffer size %d too large", bufferSize))
		}
		size = int(bufferSize)
	}
	return hasher.New(size).Hash(path)
}

// GetXXHashChecksum returns the xxHash64 digest of path, or 0 on failure.
func (in *Inspector) GetXXHashChecksum(path string, bufferSize uint64) uint64 {
	sum, err := in.Checksum(path, bufferSize)
	if err != nil {
		return 0
	}
	return sum
}

var (
	metricsOnce sync.Once
	setObserver = filesystem.SetObserver
)

// installMetrics hooks the filesystem layer into Prometheus and pre-populates
// label sets. The filesystem observer is process-wide, so this happens once,
// on the first Inspector built with metrics enabled.
func installMetrics() {
	metricsOnce.Do(func() {
		setObserver(metrics.NewFilesystemObserver())
		metrics.InitializeMetrics()
	})
}

// maxBufferSize caps caller-supplied hash buffers at 1 GiB.
const maxBufferSize = 1 << 30

// track recovers a panic from a collaborator into *errp, logs failures
// tagged with op and path, and records the operation metrics.
func (in *Inspector) track(op, path string, start time.Time, errp *error) {
	status := metrics.StatusSuccess
	if r := recover(); r != nil {
		*errp = apperr.New(op, path, apperr.ErrIO, fmt.Errorf("panic: %v", r))
		status = metrics.StatusPanic
	} else if *errp != nil {
		status = metrics.StatusError
	}

	if *errp != nil {
		logging.OpError(op, path, *errp)
	}

	if in.cfg.MetricsEnabled {
		metrics.OperationsTotal.WithLabelValues(op, status).Inc()
		metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
