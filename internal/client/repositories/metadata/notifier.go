package metadata

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/hrconsole/internal/logging"
)

const defaultDebounce = 100 * time.Millisecond

// FileNotifier watches a SQLite database file (and its -wal/-journal
// siblings) for writes by other processes. SQLite gives no key-level
// information, so every notification is "".
type FileNotifier struct {
	path     string
	debounce time.Duration
	log      logging.Logger
}

func NewFileNotifier(path string, log logging.Logger) *FileNotifier {
	if log == nil {
		log = logging.Discard()
	}
	return &FileNotifier{path: path, debounce: defaultDebounce, log: log}
}

func (n *FileNotifier) watched(name string) bool {
	base := filepath.Base(n.path)
	switch filepath.Base(name) {
	case base, base + "-wal", base + "-journal":
		return true
	}
	return false
}

func (n *FileNotifier) Changes(ctx context.Context) (<-chan string, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	// the directory is watched so that -wal files created later are seen
	if err := w.Add(filepath.Dir(n.path)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", n.path, err)
	}

	out := make(chan string, 1)
	go func() {
		defer close(out)
		defer w.Close()

		ticker := time.NewTicker(n.debounce)
		defer ticker.Stop()

		var pending bool
		var last time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 || !n.watched(ev.Name) {
					continue
				}
				pending = true
				last = time.Now()
			case <-ticker.C:
				if !pending || time.Since(last) < n.debounce {
					continue
				}
				pending = false
				select {
				case out <- "":
				default:
					// a re-read is already queued
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				n.log.Warn(ctx, "metadata file watch error", "error", err)
			}
		}
	}()

	return out, nil
}

// RedisNotifier forwards keys published by RedisRepository.
type RedisNotifier struct {
	rdb     redis.UniversalClient
	channel string
}

func NewRedisNotifier(rdb redis.UniversalClient, prefix string) *RedisNotifier {
	return &RedisNotifier{rdb: rdb, channel: ChangesChannel(prefix)}
}

func (n *RedisNotifier) Changes(ctx context.Context) (<-chan string, error) {
	ps := n.rdb.Subscribe(ctx, n.channel)
	// wait for the subscription to be confirmed so no publish is missed
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe %s: %w", n.channel, err)
	}

	out := make(chan string, 16)
	msgs := ps.Channel()
	go func() {
		defer close(out)
		defer ps.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- m.Payload:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
