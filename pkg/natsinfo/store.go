package natsinfo

import (
	"errors"
	"strings"
	"sync"
	"time"

	nats "github.com/nats-io/nats.go"
)

var ErrCacheMiss = errors.New("cache miss")

// Store is the page cache shared by the services. Keys look like <prefix>.<hash>.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Purge(prefix string) error
}

type kvStore struct {
	kv nats.KeyValue
}

func NewKeyValueStore(kv nats.KeyValue) Store {
	return &kvStore{kv: kv}
}

func (s *kvStore) Get(key string) ([]byte, error) {
	entry, err := s.kv.Get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return entry.Value(), nil
}

func (s *kvStore) Put(key string, value []byte) error {
	_, err := s.kv.Put(key, value)
	return err
}

func (s *kvStore) Purge(prefix string) error {
	keys, err := s.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var errs []error
	for _, key := range keys {
		if strings.HasPrefix(key, prefix+".") {
			errs = append(errs, s.kv.Delete(key))
		}
	}
	return errors.Join(errs...)
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore keeps pages in process when NATS is disabled.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, ErrCacheMiss
	}
	return entry.value, nil
}

func (s *MemoryStore) Put(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{value: value, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Purge(prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		if strings.HasPrefix(key, prefix+".") {
			delete(s.entries, key)
		}
	}
	return nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// NewStore returns the JetStream KV store when a connection exists and the in-memory
// store otherwise.
func NewStore(js nats.JetStreamContext) (Store, error) {
	if js == nil {
		return NewMemoryStore(CMS_PAGES_KEY_VALUE_CONFIG.TTL), nil
	}
	kv, err := CreateOrGetKeyValue(js, &CMS_PAGES_KEY_VALUE_CONFIG)
	if err != nil {
		return nil, err
	}
	return NewKeyValueStore(kv), nil
}
