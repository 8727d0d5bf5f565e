package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/notes/pkg/adapters/fs"
	"github.com/aretw0/notes/pkg/core"
)

// Init prepares the repository behind the store file at path.
//
// It returns the configured core.Repository.
func Init(path string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Build the filesystem adapter
	repo, err := initFS(path, o)
	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS handles the path resolution and configuration of the filesystem adapter.
func initFS(path string, o *options) (*fs.Repository, error) {
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	perm, _ := o.config["perm"].(os.FileMode)
	isReadOnly, _ := o.config["read_only"].(bool)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	// Default to true (safe) if not present.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only opens resolve exactly like writable ones so every command
	// of one run sees the same file.
	bypassSafety := !devSafety

	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveStorePath(path, useTemp)

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	if useTemp && resolvedPath != path {
		logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	} else if IsDevRun() && bypassSafety {
		logger.Debug("dev sandbox bypassed", "path", resolvedPath)
	}

	repo := fs.NewRepository(fs.Config{
		Path:         resolvedPath,
		MustExist:    mustExist,
		ReadOnly:     isReadOnly,
		Perm:         perm,
		Logger:       logger,
		ErrorHandler: errorHandler,
	})

	// Register Custom Serializers
	for ext, s := range o.serializers {
		serializer, ok := s.(fs.Serializer)
		if !ok {
			logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
		repo.RegisterSerializer(ext, serializer)
	}

	return repo, nil
}
