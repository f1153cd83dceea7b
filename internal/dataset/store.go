package dataset

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"flight-footprint/atlas/internal/airports"
	"flight-footprint/atlas/internal/constants"
	"flight-footprint/atlas/internal/logging"
	"flight-footprint/atlas/internal/metrics"
)

// ErrUnavailable is returned when the dataset file cannot be read or parsed.
var ErrUnavailable = errors.New("dataset unavailable")

// Snapshot is one parsed version of the dataset file.
type Snapshot struct {
	Index   *airports.Index
	Version string
	Size    int64
	ModTime time.Time
}

// Store serves the dataset at a fixed path. Every call to Current stats the
// file; the parsed index is reused while (size, mtime) are unchanged, so a
// regenerated file is picked up on the next request.
type Store struct {
	path    string
	cache   *cache.Cache
	metrics *metrics.MetricsRegistry

	mu      sync.Mutex
	lastKey string
}

// NewStore creates a store for the dataset file at path. metricsReg may be nil.
func NewStore(path string, metricsReg *metrics.MetricsRegistry) *Store {
	return &Store{
		path:    path,
		cache:   cache.New(time.Hour, 10*time.Minute),
		metrics: metricsReg,
	}
}

// Path returns the dataset file location.
func (s *Store) Path() string {
	return s.path
}

// Current returns the snapshot matching the file currently on disk.
func (s *Store) Current() (*Snapshot, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	version := fmt.Sprintf("%d-%d", info.Size(), info.ModTime().UnixNano())
	key := string(constants.CachePrefixDataset) + s.path + ":" + version

	if snap, ok := s.lookup(key); ok {
		return snap, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another request may have loaded it while we waited
	if v, found := s.cache.Get(key); found {
		return v.(*Snapshot), nil
	}

	snap, err := s.load(version, info)
	if err != nil {
		return nil, err
	}

	if s.lastKey != "" && s.lastKey != key {
		s.cache.Delete(s.lastKey)
	}
	s.cache.Set(key, snap, cache.DefaultExpiration)
	s.lastKey = key

	return snap, nil
}

// Invalidate drops any cached snapshot.
func (s *Store) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Flush()
	s.lastKey = ""
}

func (s *Store) lookup(key string) (*Snapshot, bool) {
	v, found := s.cache.Get(key)
	if s.metrics != nil {
		if found {
			s.metrics.CacheHitsTotal.WithLabelValues(string(constants.CachePrefixDataset)).Inc()
		} else {
			s.metrics.CacheMissesTotal.WithLabelValues(string(constants.CachePrefixDataset)).Inc()
		}
	}
	if !found {
		return nil, false
	}
	return v.(*Snapshot), true
}

func (s *Store) load(version string, info os.FileInfo) (*Snapshot, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	snap := &Snapshot{
		Index:   airports.NewIndex(records),
		Version: version,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	if s.metrics != nil {
		s.metrics.DatasetRecords.Set(float64(len(records)))
		s.metrics.DatasetReloadsTotal.Inc()
	}
	logging.Info("Dataset loaded", "path", s.path, "records", len(records), "version", version)
	return snap, nil
}
