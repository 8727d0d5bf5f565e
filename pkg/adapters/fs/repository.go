package fs

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/notes/pkg/core"
)

// DefaultPerm is the mode of the backing file when none is configured.
const DefaultPerm os.FileMode = 0644

// Repository implements core.Repository on top of a single local file.
// The whole collection is decoded on Load and rewritten on Replace.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	serializers   map[string]Serializer
	watcherActive bool
	lastCount     *int
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path         string // backing file; its extension selects the Serializer
	MustExist    bool   // the parent directory must already exist
	ReadOnly     bool
	Perm         os.FileMode
	Logger       *slog.Logger
	ErrorHandler func(error) // called for watcher runtime failures
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Perm == 0 {
		config.Perm = DefaultPerm
	}
	return &Repository{
		Path:        config.Path,
		config:      config,
		serializers: DefaultSerializers(),
	}
}

// RegisterSerializer registers (or overrides) the serializer for a file extension.
func (r *Repository) RegisterSerializer(ext string, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.serializers[strings.ToLower(ext)] = s
}

func (r *Repository) serializer() (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(r.Path))
	if ext == "" {
		ext = ".json"
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.serializers[ext]
	if !ok {
		return nil, fmt.Errorf("no serializer registered for %q", ext)
	}
	return s, nil
}

// Initialize ensures the directory holding the backing file exists.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.Path == "" {
		return fmt.Errorf("store path is empty")
	}
	if _, err := r.serializer(); err != nil {
		return err
	}
	if r.config.ReadOnly {
		return nil
	}

	dir := filepath.Dir(r.Path)
	if r.config.MustExist {
		info, err := os.Stat(dir)
		if os.IsNotExist(err) {
			return fmt.Errorf("store directory does not exist: %s", dir)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStorage, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store directory is not a directory: %s", dir)
		}
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create store directory: %w", core.ErrStorage, err)
	}
	return nil
}

// Load reads and decodes the backing file.
// A missing file is an empty collection; anything unreadable or undecodable
// is reported as core.ErrStorage.
func (r *Repository) Load(ctx context.Context) ([]core.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := r.serializer()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path)
	if os.IsNotExist(err) {
		r.recordCount(0)
		return []core.Note{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", core.ErrStorage, r.Path, err)
	}

	notes, err := s.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %w", core.ErrStorage, r.Path, err)
	}

	if err := checkCollection(notes); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrStorage, r.Path, err)
	}

	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, core.Normalize(n))
	}

	r.config.Logger.Debug("store loaded", "path", r.Path, "notes", len(out))
	r.recordCount(len(out))
	return out, nil
}

// Replace encodes the collection and atomically swaps it in place of the backing file.
func (r *Repository) Replace(ctx context.Context, notes []core.Note) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := r.serializer()
	if err != nil {
		return err
	}

	data, err := s.Encode(notes)
	if err != nil {
		return fmt.Errorf("%w: failed to encode notes: %w", core.ErrStorage, err)
	}

	if err := writeFileAtomic(r.Path, data, r.config.Perm); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorage, err)
	}

	r.config.Logger.Debug("store written", "path", r.Path, "notes", len(notes), "bytes", len(data))
	r.recordCount(len(notes))
	r.recordWrite()
	return nil
}

// checkCollection rejects states the store itself can never produce.
func checkCollection(notes []core.Note) error {
	seen := make(map[int]struct{}, len(notes))
	for _, n := range notes {
		if n.ID < 0 {
			return fmt.Errorf("negative note id %d", n.ID)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("duplicate note id %d", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

func (r *Repository) recordCount(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastCount = &n
}

func (r *Repository) recordWrite() {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.lastWrite = &now
}
