package platform

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/bindery/pkg/adapters/fs"
	"github.com/aretw0/bindery/pkg/core"
)

// Init initializes a corpus repository based on the provided configuration.
// The 'uri' argument is adapter-specific (a file path for 'fs').
//
// It returns the configured core.Repository.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected repository
	if o.repository != nil {
		return o.repository, nil
	}

	// 2. Initialize based on Adapter
	var repo core.Repository
	var err error

	switch o.adapter {
	case "fs":
		repo, err = initFS(uri, o)
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err != nil {
		return nil, err
	}

	// 3. Run Initialization
	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}

	return repo, nil
}

// initFS handles the initialization logic for the Filesystem adapter.
func initFS(path string, o *options) (core.Repository, error) {
	autoInit, _ := o.config["auto_init"].(bool)
	gitless, _ := o.config["gitless"].(bool)
	tempDir, _ := o.config["temp_dir"].(bool)
	mustExist, _ := o.config["must_exist"].(bool)
	strict, _ := o.config["strict"].(bool)
	systemDir, _ := o.config["system_dir"].(string)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))
	isReadOnly, _ := o.config["read_only"].(bool)

	// Default to true (safe) if dev_safety is not explicitly set.
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Bypass Safety if:
	// 1. ReadOnly is active (inherently safe)
	// 2. User explicitly disabled DevSafety
	bypassSafety := isReadOnly || !devSafety

	// Safety & Path Resolution
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolvedPath := ResolveCorpusPath(path, useTemp)

	if IsDevRun() && o.logger != nil {
		if bypassSafety {
			if isReadOnly {
				o.logger.Debug("running in READ-ONLY mode (bypassing dev sandbox)", "path", resolvedPath)
			} else {
				o.logger.Warn("running in UNSAFE mode (bypassing dev sandbox)", "path", resolvedPath)
			}
		} else {
			o.logger.Debug("running in SAFE mode (dev sandbox enabled)", "path", resolvedPath)
		}
	}

	if systemDir == "" {
		systemDir = fs.DefaultSystemDir
	}

	// Smart Gitless Detection.
	// If "gitless" is not explicitly configured, detect the environment.
	if _, ok := o.config["gitless"]; !ok {
		gitPath := filepath.Join(resolvedPath, ".git")
		systemPath := filepath.Join(resolvedPath, systemDir)

		if _, err := os.Stat(gitPath); err == nil {
			// .git exists -> it's a versioned corpus
			gitless = false
		} else {
			// .git missing.
			if autoInit {
				// If the system dir exists it's an existing gitless corpus;
				// a fresh start defaults to git.
				if _, err := os.Stat(systemPath); err == nil {
					gitless = true
				} else {
					gitless = false
				}
			} else {
				// Just opening a folder: treat as gitless (raw FS mode).
				gitless = true
			}

			if gitless && o.logger != nil {
				o.logger.Debug("auto-detected gitless mode", "reason", ".git missing")
			}
		}
	}

	if o.logger != nil && useTemp {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolvedPath)
	}

	repoConfig := fs.Config{
		Path:         resolvedPath,
		AutoInit:     autoInit,
		Gitless:      gitless,
		MustExist:    mustExist || (!autoInit && !useTemp && !isReadOnly),
		Strict:       strict,
		Logger:       o.logger,
		SystemDir:    systemDir,
		ErrorHandler: errorHandler,
		ReadOnly:     isReadOnly,
	}

	repo := fs.NewRepository(repoConfig)

	// Register Custom Serializers
	for ext, s := range o.serializers {
		if serializer, ok := s.(fs.Serializer); ok {
			repo.RegisterSerializer(ext, serializer)
		} else {
			if o.logger != nil {
				o.logger.Warn("invalid serializer type ignored", "ext", ext, "expected", "fs.Serializer")
			}
			return nil, fmt.Errorf("serializer for %s must implement fs.Serializer", ext)
		}
	}

	return repo, nil
}

// Sync synchronizes the corpus at the given URI with its remote.
func Sync(uri string, opts ...Option) error {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	var repo core.Repository

	if o.repository != nil {
		repo = o.repository
	} else {
		var err error
		switch o.adapter {
		case "fs":
			// For Sync, the corpus is expected to exist.
			o.config["must_exist"] = true
			repo, err = initFS(uri, o)
		default:
			return fmt.Errorf("unknown adapter: %s", o.adapter)
		}
		if err != nil {
			return err
		}
	}

	syncable, ok := repo.(core.Syncable)
	if !ok {
		return fmt.Errorf("repository does not support synchronization")
	}

	return syncable.Sync(context.Background())
}
