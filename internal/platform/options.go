package platform

import (
	"log/slog"
	"os"

	"github.com/aretw0/notes/pkg/core"
)

// options holds the internal configuration for the notes service.
type options struct {
	repository  core.Repository
	logger      *slog.Logger
	config      map[string]interface{}
	serializers map[string]any
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		config:      make(map[string]interface{}),
		serializers: make(map[string]any),
	}
}

// WithLogger sets the logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository allows injecting a custom storage adapter (e.g. mock).
// If provided, the default filesystem adapter will be skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithSerializer registers a custom serializer for a specific extension.
// The serializer 's' must implement fs.Serializer.
// Using 'any' keeps the public API clean, but validation happens at runtime during Init.
func WithSerializer(ext string, s any) Option {
	return func(o *options) {
		o.serializers[ext] = s
	}
}

// WithMustExist requires the directory holding the store file to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithForceTemp forces the store into the dev sandbox (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithFileMode sets the permissions of the store file.
func WithFileMode(perm os.FileMode) Option {
	return func(o *options) {
		o.config["perm"] = perm
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Create, Remove and RemoveAll return ErrReadOnly.
// 2. Initialization (Mkdir) is skipped.
// 3. The store path resolves as for a writable open (dev sandbox included).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the "Sandbox" safety mechanism when running via `go run`.
// By default (true), the store is redirected to a temporary directory to prevent
// accidental data loss. Setting this to false operates on the real path.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatcherErrorHandler registers a callback for errors occurring in the Watch loop.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}
