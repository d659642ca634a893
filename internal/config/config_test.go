package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.HashBufferSize != 8*1024*1024 {
		t.Errorf("HashBufferSize = %d, want 8 MiB", cfg.HashBufferSize)
	}
	if cfg.FFmpegPath != "ffmpeg" || cfg.FFprobePath != "ffprobe" {
		t.Errorf("tool paths = %q/%q", cfg.FFmpegPath, cfg.FFprobePath)
	}
	if cfg.MemoryRatio != DefaultMemoryRatio {
		t.Errorf("MemoryRatio = %v, want %v", cfg.MemoryRatio, DefaultMemoryRatio)
	}
	if !cfg.MetricsEnabled {
		t.Error("MetricsEnabled should default to true")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HASH_BUFFER_SIZE", "4096")
	t.Setenv("FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_PATH", "/opt/ffmpeg/bin/ffprobe")
	t.Setenv("VIPS_CONCURRENCY", "4")
	t.Setenv("VIPS_MAX_CACHE_MEM", "1048576")
	t.Setenv("VIPS_MAX_CACHE_SIZE", "10")
	t.Setenv("MEMORY_LIMIT", "2147483648")
	t.Setenv("MEMORY_RATIO", "0.5")
	t.Setenv("METRICS_ENABLED", "false")

	cfg := Load()

	want := Config{
		HashBufferSize:   4096,
		FFmpegPath:       "/opt/ffmpeg/bin/ffmpeg",
		FFprobePath:      "/opt/ffmpeg/bin/ffprobe",
		VipsConcurrency:  4,
		VipsMaxCacheMem:  1048576,
		VipsMaxCacheSize: 10,
		MemoryLimit:      2147483648,
		MemoryRatio:      0.5,
		MetricsEnabled:   false,
	}
	if cfg != want {
		t.Errorf("Load() = %+v, want %+v", cfg, want)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("HASH_BUFFER_SIZE", "-1")
	t.Setenv("VIPS_CONCURRENCY", "many")
	t.Setenv("MEMORY_LIMIT", "lots")
	t.Setenv("MEMORY_RATIO", "1.5")
	t.Setenv("METRICS_ENABLED", "maybe")

	cfg := Load()
	def := Default()

	if cfg.HashBufferSize != def.HashBufferSize {
		t.Errorf("HashBufferSize = %d, want default", cfg.HashBufferSize)
	}
	if cfg.VipsConcurrency != def.VipsConcurrency {
		t.Errorf("VipsConcurrency = %d, want default", cfg.VipsConcurrency)
	}
	if cfg.MemoryLimit != 0 {
		t.Errorf("MemoryLimit = %d, want 0", cfg.MemoryLimit)
	}
	if cfg.MemoryRatio != def.MemoryRatio {
		t.Errorf("MemoryRatio = %v, want default", cfg.MemoryRatio)
	}
	if cfg.MetricsEnabled != def.MetricsEnabled {
		t.Errorf("MetricsEnabled = %v, want default", cfg.MetricsEnabled)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		setEnv       bool
		want         string
	}{
		{"Returns default when env var not set", "MI_TEST_UNSET_VAR", "default", "", false, "default"},
		{"Returns env value when set", "MI_TEST_SET_VAR", "default", "custom", true, "custom"},
		{"Returns default when env var is empty", "MI_TEST_EMPTY_VAR", "default", "", true, "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}
			if got := getEnv(tt.key, tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
