// Package watcher turns bursts of filesystem notifications below a project
// root into debounced batches of change events.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/conneroisu/webpulse/internal/logging"
	"github.com/conneroisu/webpulse/internal/manifest"
	"github.com/conneroisu/webpulse/internal/walker"
)

// FileWatcher watches a project tree for changes with debouncing
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	filters   []FileFilter
	handlers  []ChangeHandler
	skipDir   func(name string) bool
	logger    logging.Logger
	mutex     sync.RWMutex
}

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Type    EventType
	Path    string
	ModTime time.Time
	Size    int64
}

// EventType represents the type of file change
type EventType int

const (
	EventTypeCreated EventType = iota
	EventTypeModified
	EventTypeDeleted
	EventTypeRenamed
)

// String returns the string representation of the EventType
func (e EventType) String() string {
	switch e {
	case EventTypeCreated:
		return "created"
	case EventTypeModified:
		return "modified"
	case EventTypeDeleted:
		return "deleted"
	case EventTypeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileFilter determines if a changed path is interesting
type FileFilter func(path string) bool

// ChangeHandler handles a debounced batch of change events
type ChangeHandler func(events []ChangeEvent) error

// Debouncer groups rapid file changes together
type Debouncer struct {
	delay   time.Duration
	events  chan ChangeEvent
	output  chan []ChangeEvent
	timer   *time.Timer
	pending []ChangeEvent
	mutex   sync.Mutex
}

// NewDebouncer creates a debouncer that emits a batch once no event has
// arrived for delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		events:  make(chan ChangeEvent, 100),
		output:  make(chan []ChangeEvent, 10),
		pending: make([]ChangeEvent, 0),
	}
}

// NewFileWatcher creates a new file watcher. Directories rejected by skipDir
// are never watched; a nil skipDir uses the walker's default skip list.
func NewFileWatcher(debounceDelay time.Duration, skipDir func(name string) bool, logger logging.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if skipDir == nil {
		skipDir = walker.New(nil).ShouldSkipDir
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	fw := &FileWatcher{
		watcher:   watcher,
		debouncer: NewDebouncer(debounceDelay),
		filters:   make([]FileFilter, 0),
		handlers:  make([]ChangeHandler, 0),
		skipDir:   skipDir,
		logger:    logger.WithComponent("watcher"),
	}

	return fw, nil
}

// AddFilter adds a file filter
func (fw *FileWatcher) AddFilter(filter FileFilter) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.filters = append(fw.filters, filter)
}

// AddHandler adds a change handler
func (fw *FileWatcher) AddHandler(handler ChangeHandler) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	fw.handlers = append(fw.handlers, handler)
}

// AddRecursive watches root and every subdirectory that is not skipped.
func (fw *FileWatcher) AddRecursive(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("invalid root path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid root path: %s is not a directory", root)
	}

	return filepath.WalkDir(filepath.Clean(root), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			fw.logger.Debug(context.Background(), "Skipping unreadable directory", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != filepath.Clean(root) && fw.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

// WatchedPaths returns the watched directories, sorted.
func (fw *FileWatcher) WatchedPaths() []string {
	paths := fw.watcher.WatchList()
	sort.Strings(paths)
	return paths
}

// Start starts the file watcher
func (fw *FileWatcher) Start(ctx context.Context) error {
	go fw.debouncer.start(ctx)
	go fw.processEvents(ctx)
	go fw.watchLoop(ctx)

	return nil
}

// Stop stops the file watcher and cleans up resources
func (fw *FileWatcher) Stop() error {
	fw.debouncer.stop()

	return fw.watcher.Close()
}

func (fw *FileWatcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleFsnotifyEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn(ctx, err, "File watcher error")
		}
	}
}

func (fw *FileWatcher) handleFsnotifyEvent(event fsnotify.Event) {
	info, statErr := os.Stat(event.Name)

	// New directories are watched as they appear.
	if statErr == nil && info.IsDir() {
		if event.Op.Has(fsnotify.Create) && !fw.skipDir(info.Name()) {
			if err := fw.AddRecursive(event.Name); err != nil {
				fw.logger.Debug(context.Background(), "Could not watch new directory", "path", event.Name, "error", err)
			}
		}
		return
	}

	fw.mutex.RLock()
	filters := fw.filters
	fw.mutex.RUnlock()

	for _, filter := range filters {
		if !filter(event.Name) {
			return
		}
	}

	var modTime time.Time
	var size int64
	if statErr == nil {
		modTime = info.ModTime()
		size = info.Size()
	}

	changeEvent := ChangeEvent{
		Type:    eventType(event.Op),
		Path:    event.Name,
		ModTime: modTime,
		Size:    size,
	}

	select {
	case fw.debouncer.events <- changeEvent:
	default:
		fw.logger.Debug(context.Background(), "Dropping change event, queue full", "path", event.Name)
	}
}

func eventType(op fsnotify.Op) EventType {
	switch {
	case op.Has(fsnotify.Create):
		return EventTypeCreated
	case op.Has(fsnotify.Write):
		return EventTypeModified
	case op.Has(fsnotify.Remove):
		return EventTypeDeleted
	case op.Has(fsnotify.Rename):
		return EventTypeRenamed
	default:
		return EventTypeModified
	}
}

func (fw *FileWatcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case events := <-fw.debouncer.output:
			fw.mutex.RLock()
			handlers := fw.handlers
			fw.mutex.RUnlock()

			for _, handler := range handlers {
				if err := handler(events); err != nil {
					fw.logger.Error(ctx, err, "Change handler failed", "events", len(events))
				}
			}
		}
	}
}

func (d *Debouncer) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			d.stop()
			return
		case event := <-d.events:
			d.addEvent(event)
		}
	}
}

func (d *Debouncer) stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

func (d *Debouncer) addEvent(event ChangeEvent) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	d.pending = append(d.pending, event)

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, d.flush)
}

func (d *Debouncer) flush() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if len(d.pending) == 0 {
		return
	}

	// Last event per path wins.
	eventMap := make(map[string]ChangeEvent)
	for _, event := range d.pending {
		eventMap[event.Path] = event
	}

	events := make([]ChangeEvent, 0, len(eventMap))
	for _, event := range eventMap {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Path < events[j].Path })

	select {
	case d.output <- events:
	default:
	}

	d.pending = d.pending[:0]
}

// AnalyzableFilter accepts files the analyzer reads: recognised source
// extensions plus the workspace manifests that are not JSON.
func AnalyzableFilter(path string) bool {
	name := filepath.Base(path)
	if walker.Classify(name) != walker.KindUnknown {
		return true
	}
	return name == manifest.PnpmWorkspace
}
