package assets

import (
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultQuiet is how long a directory must stay unchanged before a batch of
// changes is reported.
const DefaultQuiet = 150 * time.Millisecond

// Batch is the set of files that changed during one burst of writes, sorted
// by path.
type Batch struct {
	Paths []string
	At    time.Time
}

// Watcher watches scene, descriptor and script files in a set of directories.
// Editors often write a file several times per save, so events are held until
// the directories have been quiet for DefaultQuiet and then reported as one
// Batch.
type Watcher struct {
	quiet   time.Duration
	fs      *fsnotify.Watcher
	batches chan Batch
	errs    chan error
	stop    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	w := &Watcher{
		quiet:   DefaultQuiet,
		fs:      fw,
		batches: make(chan Batch, 4),
		errs:    make(chan error, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Batches delivers debounced changes. It is closed by Close.
func (w *Watcher) Batches() <-chan Batch { return w.batches }

// Errors delivers watch errors. Errors that arrive while one is pending are
// dropped.
func (w *Watcher) Errors() <-chan error { return w.errs }

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.stop)
		err = w.fs.Close()
		<-w.stopped
		close(w.batches)
		close(w.errs)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.stopped)

	pending := make(map[string]struct{})
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !IsWatched(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.quiet)
			} else {
				timer.Reset(w.quiet)
			}
			fire = timer.C

		case now := <-fire:
			fire = nil
			b := Batch{At: now, Paths: make([]string, 0, len(pending))}
			for p := range pending {
				b.Paths = append(b.Paths, p)
			}
			slices.Sort(b.Paths)
			clear(pending)
			select {
			case w.batches <- b:
			case <-w.stop:
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.stop:
			return
		}
	}
}

// IsWatched reports whether a change to path should trigger a reload.
func IsWatched(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json", ".tengo":
		return true
	default:
		return false
	}
}
