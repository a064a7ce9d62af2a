// internal/server/server.go
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const debounceDuration = 500 * time.Millisecond

// BuildFunc rebuilds the whole site.
type BuildFunc func(ctx context.Context) error

type Options struct {
	Port      int
	OutputDir string
	// Watch lists the files and directories whose changes trigger a rebuild.
	Watch  []string
	Build  BuildFunc
	Logger *slog.Logger
}

// Run builds the site once, then serves OutputDir and rebuilds on every
// change under Watch until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if err := opts.Build(ctx); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatches(watcher, opts.Watch, opts.OutputDir, log); err != nil {
		return err
	}
	go watchForChanges(ctx, watcher, opts, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           NewRouter(opts.OutputDir),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving site on http://localhost%s\n", srv.Addr)
	fmt.Println("Press Ctrl+C to stop")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter serves the generated site from outputDir without caching.
func NewRouter(outputDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Handle("/*", http.FileServer(http.Dir(outputDir)))
	return r
}

// addWatches registers every directory under paths. Files are watched
// through their parent directory so editors that save by renaming still
// trigger a rebuild. The output directory is never watched.
func addWatches(watcher *fsnotify.Watcher, paths []string, outputDir string, log *slog.Logger) error {
	watched := make(map[string]bool)
	skip := filepath.Clean(outputDir)
	addWatch := func(dir string) {
		dir = filepath.Clean(dir)
		if watched[dir] || dir == skip {
			return
		}
		if err := watcher.Add(dir); err != nil {
			log.Warn("Could not watch directory", "dir", dir, "error", err)
			return
		}
		log.Debug("Watching directory", "dir", dir)
		watched[dir] = true
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}
		if !info.IsDir() {
			addWatch(filepath.Dir(path))
			continue
		}
		err = filepath.Walk(path, func(walkPath string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if filepath.Clean(walkPath) == skip {
					return filepath.SkipDir
				}
				addWatch(walkPath)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	return nil
}

func watchForChanges(ctx context.Context, watcher *fsnotify.Watcher, opts Options, log *slog.Logger) {
	var lastBuildTime time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevant(event, opts.OutputDir) {
				continue
			}
			if event.Has(fsnotify.Create) {
				watchCreated(watcher, event.Name, opts.OutputDir, log)
			}
			if time.Since(lastBuildTime) < debounceDuration {
				continue
			}
			time.Sleep(100 * time.Millisecond)

			log.Info("Change detected, rebuilding", "path", event.Name)
			if err := opts.Build(ctx); err != nil {
				log.Error("Rebuild failed", "error", err)
			} else {
				log.Info("Site rebuilt")
			}
			lastBuildTime = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Warn("Watcher error", "error", err)
		}
	}
}

// watchCreated starts watching path when it is a newly created directory, so
// content folders added while serving trigger rebuilds too.
func watchCreated(watcher *fsnotify.Watcher, path, outputDir string, log *slog.Logger) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := addWatches(watcher, []string{path}, outputDir, log); err != nil {
		log.Warn("Could not watch new directory", "dir", path, "error", err)
	}
}

// relevant reports whether event should trigger a rebuild.
func relevant(event fsnotify.Event, outputDir string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	out := filepath.Clean(outputDir) + string(filepath.Separator)
	if strings.HasPrefix(filepath.Clean(event.Name)+string(filepath.Separator), out) {
		return false
	}
	base := filepath.Base(event.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}
