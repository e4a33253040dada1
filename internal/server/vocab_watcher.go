package server

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"atscan/internal/errors"

	"github.com/fsnotify/fsnotify"
)

// VocabWatcher watches the external vocabulary file for changes and triggers
// a reload. Editors and config management tools often replace the file via
// rename, so the parent directory is watched alongside the file itself.
type VocabWatcher struct {
	mu sync.RWMutex

	// File to watch
	vocabFile string

	// File metadata
	lastModTime time.Time

	// Watcher components
	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	// Control channels
	stopChan   chan struct{}
	reloadChan chan struct{}

	// Callback and logging
	reloadCallback func()
	logger         *errors.Logger

	// State
	running bool
}

// NewVocabWatcher creates a new vocabulary file watcher
func NewVocabWatcher(vocabFile string, debounceDelay time.Duration, reloadCallback func(), logger *errors.Logger) (*VocabWatcher, error) {
	if vocabFile == "" {
		return nil, fmt.Errorf("vocabulary file path is required")
	}
	if debounceDelay == 0 {
		debounceDelay = time.Second // Default 1 second debounce
	}

	return &VocabWatcher{
		vocabFile:      vocabFile,
		debounceDelay:  debounceDelay,
		stopChan:       make(chan struct{}),
		reloadChan:     make(chan struct{}, 1), // Buffered to prevent blocking
		reloadCallback: reloadCallback,
		logger:         logger,
	}, nil
}

// Start begins watching the vocabulary file for changes
func (vw *VocabWatcher) Start() error {
	vw.mu.Lock()
	defer vw.mu.Unlock()

	if vw.running {
		return fmt.Errorf("vocabulary watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	vw.fsWatcher = watcher

	if stat, err := os.Stat(vw.vocabFile); err == nil {
		vw.lastModTime = stat.ModTime()
	} else if !os.IsNotExist(err) {
		vw.cleanupWatcher()
		return fmt.Errorf("failed to stat vocabulary file: %w", err)
	}

	if err := vw.addFileToWatcher(); err != nil {
		vw.cleanupWatcher()
		return err
	}

	vw.running = true
	go vw.watchLoop()

	if vw.logger != nil {
		vw.logger.Info("Vocabulary file watcher started",
			"file", vw.vocabFile,
			"debounce_delay", vw.debounceDelay)
	}
	return nil
}

// cleanupWatcher closes the file watcher and logs any errors
func (vw *VocabWatcher) cleanupWatcher() {
	if vw.fsWatcher != nil {
		if closeErr := vw.fsWatcher.Close(); closeErr != nil && vw.logger != nil {
			vw.logger.LogError(closeErr, "Failed to close file watcher during cleanup")
		}
	}
}

// Stop stops the vocabulary file watcher
func (vw *VocabWatcher) Stop() error {
	vw.mu.Lock()
	defer vw.mu.Unlock()

	if !vw.running {
		return nil
	}

	// Signal stop
	close(vw.stopChan)

	// Stop debounce timer if running
	if vw.debounceTimer != nil {
		vw.debounceTimer.Stop()
	}

	// Close file system watcher
	if vw.fsWatcher != nil {
		if err := vw.fsWatcher.Close(); err != nil {
			if vw.logger != nil {
				vw.logger.LogError(err, "Failed to close file system watcher")
			}
			return err
		}
	}

	vw.running = false

	if vw.logger != nil {
		vw.logger.Info("Vocabulary file watcher stopped")
	}

	return nil
}

// addFileToWatcher adds the file and its directory to the file system watcher
func (vw *VocabWatcher) addFileToWatcher() error {
	// Watch the file itself
	if err := vw.fsWatcher.Add(vw.vocabFile); err != nil {
		// If the file doesn't exist yet, watch its directory instead
		if os.IsNotExist(err) {
			dir := filepath.Dir(vw.vocabFile)
			if err := vw.fsWatcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", dir, err)
			}
			if vw.logger != nil {
				vw.logger.Info("Watching directory for vocabulary file",
					"file", vw.vocabFile, "directory", dir)
			}
			return nil
		}
		return fmt.Errorf("failed to watch file %s: %w", vw.vocabFile, err)
	}

	// Also watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(vw.vocabFile)
	if err := vw.fsWatcher.Add(dir); err != nil {
		if vw.logger != nil {
			vw.logger.Warn("Failed to watch directory for atomic writes",
				"directory", dir, "error", err)
		}
	}

	return nil
}

// hasFileChanged checks if the file has been modified since last check
func (vw *VocabWatcher) hasFileChanged() bool {
	stat, err := os.Stat(vw.vocabFile)
	if err != nil {
		if os.IsNotExist(err) {
			// File was deleted
			if !vw.lastModTime.IsZero() {
				vw.lastModTime = time.Time{}
				return true
			}
		}
		return false
	}

	if vw.lastModTime.IsZero() || stat.ModTime().After(vw.lastModTime) {
		vw.lastModTime = stat.ModTime()
		return true
	}

	return false
}

// watchLoop is the main event loop for file watching
func (vw *VocabWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-vw.fsWatcher.Events:
			if !ok {
				return
			}

			if vw.shouldProcessEvent(event) {
				vw.scheduleReload()
			}

		case err, ok := <-vw.fsWatcher.Errors:
			if !ok {
				return
			}
			if vw.logger != nil {
				vw.logger.LogError(err, "File watcher error")
			}

		case <-vw.reloadChan:
			// Debounced reload trigger
			if vw.hasFileChanged() {
				if vw.logger != nil {
					vw.logger.Info("Vocabulary file changed, triggering reload")
				}
				vw.reloadCallback()
			}

		case <-vw.stopChan:
			return
		}
	}
}

// shouldProcessEvent determines if a file system event should trigger a reload check
func (vw *VocabWatcher) shouldProcessEvent(event fsnotify.Event) bool {
	if event.Name != vw.vocabFile && filepath.Base(event.Name) != filepath.Base(vw.vocabFile) {
		return false
	}

	// Process write, create, and rename events
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// scheduleReload schedules a debounced reload
func (vw *VocabWatcher) scheduleReload() {
	vw.mu.Lock()
	defer vw.mu.Unlock()

	// Reset the debounce timer
	if vw.debounceTimer != nil {
		vw.debounceTimer.Stop()
	}

	vw.debounceTimer = time.AfterFunc(vw.debounceDelay, func() {
		select {
		case vw.reloadChan <- struct{}{}:
			// Reload scheduled
		default:
			// Channel is full, reload already scheduled
		}
	})
}

// IsRunning returns whether the watcher is currently running
func (vw *VocabWatcher) IsRunning() bool {
	vw.mu.RLock()
	defer vw.mu.RUnlock()
	return vw.running
}

// WatchedFile returns the path of the file being watched
func (vw *VocabWatcher) WatchedFile() string {
	return vw.vocabFile
}
