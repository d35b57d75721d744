package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
)

// MemoryRepository guarda tudo em mapas. Serve ao DATA_BACKEND=memory e aos testes.
type MemoryRepository struct {
	mu       sync.RWMutex
	clients  map[string]studio.Client
	sessions map[string]studio.Session
	seq      map[string]int
	next     int
	now      func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return NewMemoryRepositoryWithClock(time.Now)
}

func NewMemoryRepositoryWithClock(now func() time.Time) *MemoryRepository {
	return &MemoryRepository{
		clients:  make(map[string]studio.Client),
		sessions: make(map[string]studio.Session),
		seq:      make(map[string]int),
		now:      now,
	}
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *MemoryRepository) ListClients(ctx context.Context) ([]studio.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]studio.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})
	return out, nil
}

func (r *MemoryRepository) GetClient(ctx context.Context, id string) (*studio.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) CreateClient(ctx context.Context, c studio.Client) (*studio.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	c.ID = r.newID()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.clients[c.ID] = c
	return &c, nil
}

func (r *MemoryRepository) UpdateClient(ctx context.Context, id string, patch studio.ClientPatch) (*studio.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	c = patch.Apply(c)
	c.UpdatedAt = r.now()
	r.clients[id] = c
	return &c, nil
}

func (r *MemoryRepository) DeleteClient(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return studio.ErrNotFound
	}
	delete(r.clients, id)
	delete(r.seq, id)
	return nil
}

// --------------------------------------------------
// Session
// --------------------------------------------------

func (r *MemoryRepository) ListSessions(ctx context.Context) ([]studio.Session, error) {
	return r.listSessions(ctx, func(studio.Session) bool { return true })
}

func (r *MemoryRepository) ListSessionsByClient(ctx context.Context, clientID string) ([]studio.Session, error) {
	return r.listSessions(ctx, func(s studio.Session) bool { return s.ClientID == clientID })
}

func (r *MemoryRepository) listSessions(ctx context.Context, keep func(studio.Session) bool) ([]studio.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]studio.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		if keep(s) {
			out = append(out, s)
		}
	}
	// "YYYY-MM-DD" ordena lexicograficamente
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return r.seq[out[i].ID] < r.seq[out[j].ID]
	})
	return out, nil
}

func (r *MemoryRepository) GetSession(ctx context.Context, id string) (*studio.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	return &s, nil
}

func (r *MemoryRepository) CreateSession(ctx context.Context, s studio.Session) (*studio.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d, err := parseStoredDate(s.Date)
	if err != nil {
		return nil, err
	}
	// mesmo formato que o postgres devolve
	s.Date = d.Format(timezone.DateLayout)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	s.ID = r.newID()
	s.CreatedAt = now
	s.UpdatedAt = now
	r.sessions[s.ID] = s
	return &s, nil
}

func (r *MemoryRepository) UpdateSession(ctx context.Context, id string, patch studio.SessionPatch) (*studio.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if patch.Date != nil {
		d, err := parseStoredDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		date := d.Format(timezone.DateLayout)
		patch.Date = &date
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, studio.ErrNotFound
	}
	s = patch.Apply(s)
	s.UpdatedAt = r.now()
	r.sessions[id] = s
	return &s, nil
}

func (r *MemoryRepository) DeleteSession(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return studio.ErrNotFound
	}
	delete(r.sessions, id)
	delete(r.seq, id)
	return nil
}

// newID exige r.mu travado para escrita.
func (r *MemoryRepository) newID() string {
	id := uuid.NewString()
	r.next++
	r.seq[id] = r.next
	return id
}

// Compile-time check
var _ studio.Repository = (*MemoryRepository)(nil)
