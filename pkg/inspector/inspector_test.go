package inspector

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"media-inspector/internal/config"
	"media-inspector/internal/duration"
	"media-inspector/internal/filesystem"
	"media-inspector/internal/lifecycle"
	"media-inspector/internal/metadata"
	"media-inspector/internal/metrics"
	"media-inspector/internal/thumbnail"
	"media-inspector/internal/timestamp"

	"github.com/cespare/xxhash/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

type countingSubsystem struct {
	name   string
	err    error
	starts atomic.Int32
	stops  atomic.Int32
}

func (s *countingSubsystem) Name() string { return s.name }
func (s *countingSubsystem) Start() error {
	s.starts.Add(1)
	time.Sleep(time.Millisecond)
	return s.err
}
func (s *countingSubsystem) Stop() { s.stops.Add(1) }

type panicProvider struct{}

func (panicProvider) Thumbnail(string, uint32) (thumbnail.Bitmap, error) {
	panic("native provider crashed")
}

type stream struct{ path string }

func (s *stream) Name() string { return s.path }
func (s *stream) Close() error { return nil }

type reader struct{ ticks uint64 }

func (r *reader) PresentationDuration() (uint64, error) { return r.ticks, nil }
func (r *reader) Close() error                          { return nil }

type fixedFramework struct{ ticks uint64 }

func (f fixedFramework) OpenStream(path string) (duration.Stream, error) {
	return &stream{path: path}, nil
}

func (f fixedFramework) NewReader(duration.Stream) (duration.Reader, error) {
	return &reader{ticks: f.ticks}, nil
}

type fixedSource struct{ attrs metadata.Attributes }

func (f fixedSource) Attributes(string) (metadata.Attributes, error) { return f.attrs, nil }

func testConfig() config.Config {
	cfg := config.Default()
	cfg.FFmpegPath = "/nonexistent/ffmpeg"
	cfg.FFprobePath = "/nonexistent/ffprobe"
	return cfg
}

func newTestInspector(opts ...Option) *Inspector {
	base := []Option{WithConfig(testConfig()), WithSubsystems()}
	return New(append(base, opts...)...)
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("failed to read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestInitializeConcurrentFirstCallers(t *testing.T) {
	sub := &countingSubsystem{name: "graphics"}
	in := New(WithConfig(testConfig()), WithSubsystems(sub))

	const callers = 16
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in.Initialize()
		}()
	}
	wg.Wait()

	if got := sub.starts.Load(); got != 1 {
		t.Errorf("subsystem started %d times, want 1", got)
	}
	if in.State() != lifecycle.Initialized {
		t.Errorf("State() = %v, want initialized", in.State())
	}

	in.Shutdown()
	in.Shutdown()
	if got := sub.stops.Load(); got != 1 {
		t.Errorf("subsystem stopped %d times, want 1", got)
	}
}

func TestInitializeDegraded(t *testing.T) {
	broken := &countingSubsystem{name: "media", err: errors.New("ffprobe missing")}
	in := New(WithConfig(testConfig()), WithSubsystems(broken))
	in.Initialize()

	if in.State() != lifecycle.Initialized {
		t.Errorf("State() = %v, want initialized", in.State())
	}

	path := writeFile(t, "data.bin", []byte("still hashing"))
	if got := in.GetXXHashChecksum(path, 0); got != xxhash.Sum64String("still hashing") {
		t.Errorf("checksum in degraded mode = %x", got)
	}
}

func TestGetXXHashChecksum(t *testing.T) {
	in := newTestInspector()
	content := []byte("The quick brown fox jumps over the lazy dog")
	path := writeFile(t, "fox.txt", content)
	want := xxhash.Sum64(content)

	for _, size := range []uint64{0, 1, 5, 4096} {
		if got := in.GetXXHashChecksum(path, size); got != want {
			t.Errorf("GetXXHashChecksum(size=%d) = %x, want %x", size, got, want)
		}
	}

	empty := writeFile(t, "empty", nil)
	if got := in.GetXXHashChecksum(empty, 0); got != 0xef46db3751d8e999 {
		t.Errorf("empty file checksum = %x", got)
	}

	if got := in.GetXXHashChecksum(filepath.Join(t.TempDir(), "missing"), 0); got != 0 {
		t.Errorf("missing file checksum = %x, want 0", got)
	}
	if _, err := in.Checksum(filepath.Join(t.TempDir(), "missing"), 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Checksum() error = %v, want ErrNotFound", err)
	}
	if _, err := in.Checksum(path, 1<<40); !errors.Is(err, ErrIO) {
		t.Errorf("Checksum(huge buffer) error = %v, want ErrIO", err)
	}
}

func TestGetFileMetadata(t *testing.T) {
	created := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	modified := created.Add(time.Hour)
	attrs := metadata.Attributes{
		CreationTime:   timestamp.SplitTicks(timestamp.FromTime(created)),
		LastAccessTime: timestamp.SplitTicks(timestamp.FromTime(modified)),
		LastWriteTime:  timestamp.SplitTicks(timestamp.FromTime(modified)),
		SizeHigh:       1,
		SizeLow:        2,
	}
	in := newTestInspector(WithAttributeSource(fixedSource{attrs: attrs}))

	md, err := in.GetFileMetadata("/any/path")
	if err != nil {
		t.Fatalf("GetFileMetadata() error = %v", err)
	}
	if md.CreationTimeMs != created.UnixMilli() {
		t.Errorf("CreationTimeMs = %d, want %d", md.CreationTimeMs, created.UnixMilli())
	}
	if md.ModifiedTimeMs != modified.UnixMilli() {
		t.Errorf("ModifiedTimeMs = %d, want %d", md.ModifiedTimeMs, modified.UnixMilli())
	}
	if md.FileSizeBytes != 1<<32+2 {
		t.Errorf("FileSizeBytes = %d, want %d", md.FileSizeBytes, uint64(1<<32+2))
	}

	if _, err := in.GetFileMetadata(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetFileMetadata(\"\") error = %v, want ErrNotFound", err)
	}
}

func TestGetFileMetadataNative(t *testing.T) {
	in := newTestInspector()
	path := writeFile(t, "native.bin", make([]byte, 1234))

	md, err := in.GetFileMetadata(path)
	if err != nil {
		t.Fatalf("GetFileMetadata() error = %v", err)
	}
	if md.FileSizeBytes != 1234 {
		t.Errorf("FileSizeBytes = %d, want 1234", md.FileSizeBytes)
	}
	if d := time.Since(md.ModifiedTime()); d < -2*time.Second || d > time.Minute {
		t.Errorf("ModifiedTime() = %v, too far from now", md.ModifiedTime())
	}

	if _, err := in.GetFileMetadata(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}
}

func TestGetVideoDuration(t *testing.T) {
	in := newTestInspector(WithDurationFramework(fixedFramework{ticks: 90_000_000}))
	path := writeFile(t, "clip.mp4", []byte("x"))

	if got := in.GetVideoDuration(path); got != 9000 {
		t.Errorf("GetVideoDuration() = %v, want 9000", got)
	}
	if got := in.GetVideoDuration(filepath.Join(t.TempDir(), "missing.mp4")); got != 0 {
		t.Errorf("GetVideoDuration(missing) = %v, want 0", got)
	}
}

func TestGetVideoDurationWithoutMediaFramework(t *testing.T) {
	in := newTestInspector()
	path := writeFile(t, "clip.mp4", []byte("x"))

	if got := in.GetVideoDuration(path); got != 0 {
		t.Errorf("GetVideoDuration() = %v, want 0", got)
	}
	if _, err := in.VideoDuration(path); !errors.Is(err, ErrBind) {
		t.Errorf("VideoDuration() error = %v, want ErrBind", err)
	}
}

func TestGetThumbnail(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	img := image.NewRGBA(image.Rect(0, 0, 120, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 120; x++ {
			img.Set(x, y, color.RGBA{R: 10, G: 200, B: 30, A: 255})
		}
	}
	f, err := os.Create(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	in := newTestInspector()
	dst := filepath.Join(dir, "thumb.png")
	if !in.GetThumbnail(src, dst, 30) {
		t.Fatal("GetThumbnail() = false")
	}

	out, err := os.Open(dst)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	cfg, format, err := image.DecodeConfig(out)
	if err != nil {
		t.Fatal(err)
	}
	if format != "png" || cfg.Width != 30 || cfg.Height != 15 {
		t.Errorf("thumbnail = %s %dx%d, want png 30x15", format, cfg.Width, cfg.Height)
	}
}

func TestGetThumbnailFailures(t *testing.T) {
	dir := t.TempDir()
	bogus := writeFile(t, "bogus.png", []byte("definitely not a png"))

	tests := []struct {
		name string
		src  string
	}{
		{"Missing source", filepath.Join(dir, "missing.png")},
		{"Corrupt source", bogus},
		{"Unsupported type", writeFile(t, "notes.txt", []byte("hello"))},
		{"Video without ffmpeg", writeFile(t, "clip.mp4", []byte("x"))},
	}

	in := newTestInspector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "thumb.png")
			if in.GetThumbnail(tt.src, dst, 64) {
				t.Fatal("GetThumbnail() = true, want false")
			}
			if _, err := os.Stat(dst); !os.IsNotExist(err) {
				t.Errorf("destination exists after failure: %v", err)
			}
		})
	}
}

func TestNoEncoder(t *testing.T) {
	src := writeFile(t, "a.png", nil)
	in := newTestInspector(WithEncoders(thumbnail.Encoder{MimeType: "image/jpeg"}))

	err := in.Thumbnail(ThumbnailRequest{Source: src, Destination: filepath.Join(t.TempDir(), "o.png"), Size: 8})
	if err == nil {
		t.Fatal("Thumbnail() expected error")
	}
}

func TestPanicIsContained(t *testing.T) {
	in := newTestInspector(WithThumbnailProvider(panicProvider{}))
	before := counterValue(t, metrics.OperationsTotal.WithLabelValues(metrics.OpThumbnail, metrics.StatusPanic))

	dst := filepath.Join(t.TempDir(), "thumb.png")
	if in.GetThumbnail("/some/file.png", dst, 16) {
		t.Error("GetThumbnail() = true after panic")
	}

	err := in.Thumbnail(ThumbnailRequest{Source: "/some/file.png", Destination: dst, Size: 16})
	if err == nil {
		t.Error("Thumbnail() error = nil after panic")
	}

	after := counterValue(t, metrics.OperationsTotal.WithLabelValues(metrics.OpThumbnail, metrics.StatusPanic))
	if after-before != 2 {
		t.Errorf("panic counter delta = %v, want 2", after-before)
	}
}

func TestOperationMetrics(t *testing.T) {
	in := newTestInspector()
	path := writeFile(t, "m.bin", []byte("metrics"))

	success := metrics.OperationsTotal.WithLabelValues(metrics.OpHash, metrics.StatusSuccess)
	failure := metrics.OperationsTotal.WithLabelValues(metrics.OpHash, metrics.StatusError)
	s0, f0 := counterValue(t, success), counterValue(t, failure)

	in.GetXXHashChecksum(path, 0)
	in.GetXXHashChecksum(filepath.Join(t.TempDir(), "missing"), 0)

	if d := counterValue(t, success) - s0; d != 1 {
		t.Errorf("success delta = %v, want 1", d)
	}
	if d := counterValue(t, failure) - f0; d != 1 {
		t.Errorf("error delta = %v, want 1", d)
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	in := New(WithConfig(cfg), WithSubsystems())

	c := metrics.OperationsTotal.WithLabelValues(metrics.OpHash, metrics.StatusError)
	before := counterValue(t, c)
	in.GetXXHashChecksum("", 0)
	if d := counterValue(t, c) - before; d != 0 {
		t.Errorf("error counter moved by %v with metrics disabled", d)
	}
}

func TestConcurrentQueries(t *testing.T) {
	in := newTestInspector(WithDurationFramework(fixedFramework{ticks: 10_000}))
	content := []byte("shared file read by many goroutines")
	path := writeFile(t, "shared.bin", content)
	want := xxhash.Sum64(content)

	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if got := in.GetXXHashChecksum(path, uint64(i+1)); got != want {
				errs <- "checksum mismatch"
			}
			if got := in.GetVideoDuration(path); got != 1 {
				errs <- "duration mismatch"
			}
			if _, err := in.GetFileMetadata(path); err != nil {
				errs <- err.Error()
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
}

func TestInitializeAfterShutdownIsIgnored(t *testing.T) {
	sub := &countingSubsystem{name: "graphics"}
	in := New(WithConfig(testConfig()), WithSubsystems(sub))

	in.Initialize()
	in.Shutdown()
	in.Initialize()

	if got := sub.starts.Load(); got != 1 {
		t.Errorf("subsystem started %d times, want 1", got)
	}
	if got := sub.stops.Load(); got != 1 {
		t.Errorf("subsystem stopped %d times, want 1", got)
	}
	if in.State() != lifecycle.Shutdown {
		t.Errorf("State() = %v, want shutdown", in.State())
	}
}

func TestMetricsInstalledOnce(t *testing.T) {
	origSet := setObserver
	metricsOnce = sync.Once{}
	var installs int
	setObserver = func(o filesystem.Observer) {
		installs++
		origSet(o)
	}
	t.Cleanup(func() { setObserver = origSet })

	disabled := testConfig()
	disabled.MetricsEnabled = false
	New(WithConfig(disabled), WithSubsystems())
	if installs != 0 {
		t.Fatalf("observer installed %d times by a metrics-disabled Inspector", installs)
	}

	New(WithConfig(testConfig()), WithSubsystems())
	New(WithConfig(testConfig()), WithSubsystems())
	if installs != 1 {
		t.Errorf("observer installed %d times, want 1", installs)
	}
}
