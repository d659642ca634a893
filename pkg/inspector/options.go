package inspector

import (
	"media-inspector/internal/config"
	"media-inspector/internal/duration"
	"media-inspector/internal/lifecycle"
	"media-inspector/internal/metadata"
	"media-inspector/internal/thumbnail"
)

// Option configures an Inspector.
type Option func(*options)

type options struct {
	cfg        *config.Config
	provider   thumbnail.Provider
	encoders   []thumbnail.Encoder
	framework  duration.Framework
	source     metadata.AttributeSource
	subsystems []lifecycle.Subsystem
}

// WithConfig replaces the configuration loaded from the environment.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.cfg = &cfg
	}
}

// WithThumbnailProvider replaces the handler-based thumbnail provider.
func WithThumbnailProvider(p thumbnail.Provider) Option {
	return func(o *options) {
		o.provider = p
	}
}

// WithEncoders replaces the encoders the thumbnail generator can pick from.
func WithEncoders(encoders ...thumbnail.Encoder) Option {
	return func(o *options) {
		o.encoders = encoders
	}
}

// WithDurationFramework replaces the ffprobe duration framework.
func WithDurationFramework(fw duration.Framework) Option {
	return func(o *options) {
		o.framework = fw
	}
}

// WithAttributeSource replaces the platform file attribute source.
func WithAttributeSource(src metadata.AttributeSource) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithSubsystems replaces the runtime, media and graphics subsystems started
// by Initialize.
func WithSubsystems(subsystems ...lifecycle.Subsystem) Option {
	return func(o *options) {
		if subsystems == nil {
			subsystems = []lifecycle.Subsystem{}
		}
		o.subsystems = subsystems
	}
}
