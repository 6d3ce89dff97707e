package storage

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"gourmet/internal/models"
)

// debounceDelay is how long to wait after a file event before reading
// the slot, so a rename-into-place is observed as one change.
const debounceDelay = 50 * time.Millisecond

// FileRepository keeps the order collection as a single JSON document
// on disk. Writes go through a temp file and rename so watchers never
// observe a half-written slot. Changes made by other processes are
// picked up with fsnotify; a content hash of the last local write is
// kept so a process never refreshes from itself.
type FileRepository struct {
	path string

	mu         sync.Mutex
	selfHash   [sha256.Size]byte
	hasWritten bool
}

// NewFileRepository creates a repository backed by the JSON document
// at path. The file does not need to exist yet.
func NewFileRepository(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileRepository{path: path}, nil
}

// Load reads the slot. A missing or unparseable file yields an empty
// collection, never a user-visible error.
func (r *FileRepository) Load(ctx context.Context) ([]models.Order, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeOrders(data), nil
}

// Save replaces the slot with the serialized collection.
func (r *FileRepository) Save(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return err
	}

	r.mu.Lock()
	r.selfHash = sha256.Sum256(data)
	r.hasWritten = true
	r.mu.Unlock()
	return nil
}

// Watch emits the refreshed collection whenever another process
// rewrites the slot. Runs until ctx is cancelled.
func (r *FileRepository) Watch(ctx context.Context) (<-chan []models.Order, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: rename-into-place replaces the file node,
	// so a watch on the file itself would go stale after one write.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	changes := make(chan []models.Order, 1)

	go func() {
		defer watcher.Close()
		defer close(changes)

		var debounce *time.Timer
		fire := make(chan struct{}, 1)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(r.path) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debounceDelay, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			case <-fire:
				orders, external := r.readExternal()
				if !external {
					continue
				}
				// Drop any undelivered older snapshot; last write wins.
				select {
				case <-changes:
				default:
				}
				select {
				case changes <- orders:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Slot watcher error: %v", err)
			}
		}
	}()

	return changes, nil
}

// readExternal reads the slot and reports whether its content came
// from another process.
func (r *FileRepository) readExternal() ([]models.Order, bool) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, false
	}

	r.mu.Lock()
	self := r.hasWritten && sha256.Sum256(data) == r.selfHash
	r.mu.Unlock()
	if self {
		return nil, false
	}
	return decodeOrders(data), true
}

// Close releases resources. The file watcher is owned by Watch and
// shuts down with its context.
func (r *FileRepository) Close() error {
	return nil
}

// decodeOrders parses a serialized collection, degrading malformed
// content to an empty collection.
func decodeOrders(data []byte) []models.Order {
	var orders []models.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Printf("Ignoring malformed order slot: %v", err)
		return nil
	}
	return orders
}
