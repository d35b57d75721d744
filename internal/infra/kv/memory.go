package kv

import (
	"container/list"
	"context"
	"strconv"
	"sync"
	"time"
)

const defaultMemoryEntries = 10000

type entry struct {
	key       string
	val       string
	expiresAt time.Time
}

// MemoryStore é um LRU com TTL por chave, usado quando REDIS_URL não está
// configurada. Não é compartilhado entre instâncias.
type MemoryStore struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
	now     func() time.Time
}

func NewMemoryStore(maxSize int) *MemoryStore {
	if maxSize <= 0 {
		maxSize = defaultMemoryEntries
	}
	return &MemoryStore{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
		now:     time.Now,
	}
}

func (s *MemoryStore) AllowRate(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error) {
	if err := ctx.Err(); err != nil {
		return false, 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	if e, ok := s.lookup(key); ok {
		n, _ = strconv.ParseInt(e.val, 10, 64)
	}
	n++
	// mesmo comportamento do INCR+EXPIRE: cada tentativa renova a janela
	s.put(key, strconv.FormatInt(n, 10), window)

	return n <= limit, n, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(key, val, ttl)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.lookup(key); ok {
		return e.val, nil
	}
	return "", nil
}

func (s *MemoryStore) Del(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		if elem, ok := s.items[k]; ok {
			s.remove(elem)
		}
	}
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// Len conta também entradas expiradas ainda não removidas.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ---------------------------------------------------------------------------
// Internos (exigem s.mu travado)
// ---------------------------------------------------------------------------

func (s *MemoryStore) lookup(key string) (*entry, bool) {
	elem, ok := s.items[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		s.remove(elem)
		return nil, false
	}
	s.lru.MoveToFront(elem)
	return e, true
}

// put com ttl <= 0 grava sem expiração.
func (s *MemoryStore) put(key, val string, ttl time.Duration) {
	e := &entry{key: key, val: val}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	if elem, ok := s.items[key]; ok {
		elem.Value = e
		s.lru.MoveToFront(elem)
		return
	}

	s.items[key] = s.lru.PushFront(e)
	if s.lru.Len() > s.maxSize {
		if oldest := s.lru.Back(); oldest != nil {
			s.remove(oldest)
		}
	}
}

func (s *MemoryStore) remove(elem *list.Element) {
	delete(s.items, elem.Value.(*entry).key)
	s.lru.Remove(elem)
}

var _ Store = (*MemoryStore)(nil)
