package studio

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	"github.com/BruksfildServices01/photo-studio/internal/infra/repository"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	"github.com/BruksfildServices01/photo-studio/internal/validators"
)

var errStorage = errors.New("storage offline")

// flakyRepo embrulha o repositório em memória e injeta falhas por chamada.
type flakyRepo struct {
	*repository.MemoryRepository

	mu            sync.Mutex
	failList      bool
	failCreate    bool
	failUpdateFor map[string]bool
	failDeleteFor map[string]bool
}

func newFlakyRepo() *flakyRepo {
	return &flakyRepo{
		MemoryRepository: repository.NewMemoryRepository(),
		failUpdateFor:    map[string]bool{},
		failDeleteFor:    map[string]bool{},
	}
}

func (r *flakyRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	r.mu.Lock()
	fail := r.failList
	r.mu.Unlock()
	if fail {
		return nil, errStorage
	}
	return r.MemoryRepository.ListClients(ctx)
}

func (r *flakyRepo) CreateClient(ctx context.Context, c domain.Client) (*domain.Client, error) {
	r.mu.Lock()
	fail := r.failCreate
	r.mu.Unlock()
	if fail {
		return nil, errStorage
	}
	return r.MemoryRepository.CreateClient(ctx, c)
}

func (r *flakyRepo) UpdateSession(ctx context.Context, id string, p domain.SessionPatch) (*domain.Session, error) {
	r.mu.Lock()
	fail := r.failUpdateFor[id]
	r.mu.Unlock()
	if fail {
		return nil, errStorage
	}
	return r.MemoryRepository.UpdateSession(ctx, id, p)
}

func (r *flakyRepo) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	fail := r.failDeleteFor[id]
	r.mu.Unlock()
	if fail {
		return errStorage
	}
	return r.MemoryRepository.DeleteSession(ctx, id)
}

var testNow = time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

func newStudio(t *testing.T, repo domain.Repository, limit int) *Studio {
	t.Helper()
	s := New(repo, nil, validators.New(false), applog.Discard(), Options{
		RenameConcurrency: limit,
		Now:               func() time.Time { return testNow },
	})
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func validClient(name string) domain.Client {
	return domain.Client{Name: name, Email: "cliente@estudio.com", Phone: "(11) 98765-4321"}
}

func validSession(clientID, date string) domain.Session {
	return domain.Session{
		ClientID: clientID,
		Type:     domain.TypeFamilia,
		Date:     date,
		Time:     "14:00",
		Duration: 2,
		Location: "Estúdio",
		Value:    500,
	}
}

func seedClientWithSessions(t *testing.T, s *Studio, name string, n int) (*domain.Client, []string) {
	t.Helper()
	ctx := context.Background()

	c, err := s.AddClient(ctx, validClient(name))
	if err != nil {
		t.Fatalf("add client: %v", err)
	}
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sess, err := s.AddSession(ctx, validSession(c.ID, "2024-04-0"+string(rune('1'+i))))
		if err != nil {
			t.Fatalf("add session: %v", err)
		}
		ids = append(ids, sess.ID)
	}
	return c, ids
}

func strPtr(s string) *string { return &s }

// --------------------------------------------------
// Carga e lastError
// --------------------------------------------------

func TestStudio_LoadFailureSetsLastError(t *testing.T) {
	repo := newFlakyRepo()
	s := newStudio(t, repo, 1)

	repo.failList = true
	err := s.Load(context.Background())

	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != OpLoad {
		t.Fatalf("err = %v, want OperationError(load)", err)
	}
	if !errors.Is(err, errStorage) {
		t.Error("operation error must wrap the storage error")
	}
	if s.LastError() != "Falha ao carregar dados. Por favor, tente novamente." {
		t.Errorf("lastError = %q", s.LastError())
	}
	if s.State().Loading {
		t.Error("loading must be reset after failure")
	}
}

func TestStudio_LastErrorStickyUntilLoad(t *testing.T) {
	repo := newFlakyRepo()
	s := newStudio(t, repo, 1)
	ctx := context.Background()

	repo.failCreate = true
	if _, err := s.AddClient(ctx, validClient("Ana")); err == nil {
		t.Fatal("expected failure")
	}
	want := "Falha ao adicionar cliente. Por favor, tente novamente."
	if s.LastError() != want {
		t.Fatalf("lastError = %q", s.LastError())
	}

	repo.failCreate = false
	if _, err := s.AddClient(ctx, validClient("Ana")); err != nil {
		t.Fatal(err)
	}
	if s.LastError() != want {
		t.Error("a successful mutation must not clear lastError")
	}

	if err := s.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if s.LastError() != "" {
		t.Errorf("lastError after load = %q", s.LastError())
	}
}

func TestStudio_ValidationDoesNotTouchStorage(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)

	_, err := s.AddClient(context.Background(), domain.Client{Name: "  ", Email: "x", Phone: "1"})
	var fields validators.FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("err = %v, want FieldErrors", err)
	}
	if len(fields) != 3 {
		t.Errorf("fields = %v", fields)
	}
	if len(s.State().Clients) != 0 || s.LastError() != "" {
		t.Error("validation failure must not change state")
	}
}

// --------------------------------------------------
// Sessões
// --------------------------------------------------

func TestStudio_AddSessionDefaults(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()

	c, err := s.AddClient(ctx, validClient("  Carla  "))
	if err != nil {
		t.Fatal(err)
	}
	if c.Name != "Carla" {
		t.Errorf("name must be trimmed, got %q", c.Name)
	}

	in := validSession(c.ID, "2024-03-20")
	in.ClientName = "outro nome"
	sess, err := s.AddSession(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if sess.Status != domain.StatusAgendado || sess.PaymentStatus != domain.PaymentPendente {
		t.Errorf("defaults = %s/%s", sess.Status, sess.PaymentStatus)
	}
	if sess.ClientName != "Carla" {
		t.Errorf("clientName = %q, want resolved name", sess.ClientName)
	}
	if got := len(s.State().Sessions); got != 1 {
		t.Errorf("cache sessions = %d", got)
	}
}

func TestStudio_AddSessionRejects(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()

	_, err := s.AddSession(ctx, validSession("missing", "2024-03-20"))
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Errorf("unknown client err = %v", err)
	}

	c, _ := s.AddClient(ctx, validClient("Ana"))
	_, err = s.AddSession(ctx, validSession(c.ID, "2024-03-14"))
	var fields validators.FieldErrors
	if !errors.As(err, &fields) || fields["date"] != "Data não pode ser no passado" {
		t.Errorf("past date err = %v", err)
	}

	// o próprio dia é aceito
	if _, err := s.AddSession(ctx, validSession(c.ID, "2024-03-15")); err != nil {
		t.Errorf("today must be accepted: %v", err)
	}
}

func TestStudio_StatusTransitions(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()
	_, ids := seedClientWithSessions(t, s, "Ana", 1)

	if _, err := s.UpdateSessionStatus(ctx, ids[0], domain.StatusConfirmado); err != nil {
		t.Fatal(err)
	}
	if _, err := s.UpdateSessionStatus(ctx, ids[0], domain.StatusRealizado); err != nil {
		t.Fatal(err)
	}
	_, err := s.UpdateSessionStatus(ctx, ids[0], domain.StatusAgendado)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("terminal transition err = %v", err)
	}

	_, err = s.UpdateSessionStatus(ctx, "missing", domain.StatusConfirmado)
	if !httperr.IsBusiness(err, "session_not_found") {
		t.Errorf("missing session err = %v", err)
	}

	sess, err := s.UpdatePaymentStatus(ctx, ids[0], domain.PaymentSinal)
	if err != nil {
		t.Fatal(err)
	}
	if sess.PaymentStatus != domain.PaymentSinal {
		t.Errorf("payment = %s", sess.PaymentStatus)
	}
	cached, _ := s.FindSession(ids[0])
	if cached.PaymentStatus != domain.PaymentSinal || cached.Status != domain.StatusRealizado {
		t.Errorf("cache = %+v", cached)
	}
}

func TestStudio_UpdateSessionIgnoresClientName(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()
	_, ids := seedClientWithSessions(t, s, "Ana", 1)
	other, _ := s.AddClient(ctx, validClient("Beatriz"))

	sess, err := s.UpdateSession(ctx, ids[0], domain.SessionPatch{ClientName: strPtr("Hack")})
	if err != nil {
		t.Fatal(err)
	}
	if sess.ClientName != "Ana" {
		t.Errorf("clientName = %q", sess.ClientName)
	}

	sess, err = s.UpdateSession(ctx, ids[0], domain.SessionPatch{ClientID: &other.ID})
	if err != nil {
		t.Fatal(err)
	}
	if sess.ClientID != other.ID || sess.ClientName != "Beatriz" {
		t.Errorf("moved session = %+v", sess)
	}
}

func TestStudio_DeleteSession(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()
	_, ids := seedClientWithSessions(t, s, "Ana", 2)

	if err := s.DeleteSession(ctx, ids[0]); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.FindSession(ids[0]); ok {
		t.Error("deleted session still cached")
	}
	if err := s.DeleteSession(ctx, ids[0]); !httperr.IsBusiness(err, "session_not_found") {
		t.Errorf("second delete err = %v", err)
	}
}

// --------------------------------------------------
// Renomeação
// --------------------------------------------------

func TestStudio_RenamePropagatesToAllSessions(t *testing.T) {
	for _, limit := range []int{1, 4} {
		s := newStudio(t, newFlakyRepo(), limit)
		ctx := context.Background()
		c, _ := seedClientWithSessions(t, s, "Ana", 3)

		if _, err := s.UpdateClient(ctx, c.ID, domain.ClientPatch{Name: strPtr(" Ana Souza ")}); err != nil {
			t.Fatalf("limit %d: %v", limit, err)
		}

		for _, sess := range s.State().Sessions {
			if sess.ClientName != "Ana Souza" {
				t.Errorf("limit %d: cached session %s has %q", limit, sess.ID, sess.ClientName)
			}
		}
		stored, _ := s.repo.ListSessionsByClient(ctx, c.ID)
		for _, sess := range stored {
			if sess.ClientName != "Ana Souza" {
				t.Errorf("limit %d: stored session %s has %q", limit, sess.ID, sess.ClientName)
			}
		}
	}
}

func TestStudio_RenamePartialFailure(t *testing.T) {
	repo := newFlakyRepo()
	s := newStudio(t, repo, 1)
	ctx := context.Background()
	c, ids := seedClientWithSessions(t, s, "Ana", 3)

	// sessões listadas por data: a segunda falha, a terceira não é tentada
	repo.failUpdateFor[ids[1]] = true

	_, err := s.UpdateClient(ctx, c.ID, domain.ClientPatch{Name: strPtr("Ana Souza")})
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != OpUpdateClient {
		t.Fatalf("err = %v", err)
	}
	if s.LastError() != "Falha ao atualizar cliente. Por favor, tente novamente." {
		t.Errorf("lastError = %q", s.LastError())
	}

	stored, _ := repo.GetClient(ctx, c.ID)
	if stored.Name != "Ana Souza" {
		t.Errorf("client rename must stay committed, got %q", stored.Name)
	}

	want := map[string]string{ids[0]: "Ana Souza", ids[1]: "Ana", ids[2]: "Ana"}
	for id, name := range want {
		got, _ := repo.GetSession(ctx, id)
		if got.ClientName != name {
			t.Errorf("stored session %s = %q, want %q", id, got.ClientName, name)
		}
		cached, _ := s.FindSession(id)
		if cached.ClientName != name {
			t.Errorf("cached session %s = %q, want %q", id, cached.ClientName, name)
		}
	}
}

func TestStudio_UpdateClientWithoutNameSkipsSessions(t *testing.T) {
	repo := newFlakyRepo()
	s := newStudio(t, repo, 1)
	ctx := context.Background()
	c, ids := seedClientWithSessions(t, s, "Ana", 1)
	repo.failUpdateFor[ids[0]] = true

	updated, err := s.UpdateClient(ctx, c.ID, domain.ClientPatch{Phone: strPtr("11912345678")})
	if err != nil {
		t.Fatalf("sessions must not be touched: %v", err)
	}
	if updated.Phone != "11912345678" {
		t.Errorf("phone = %q", updated.Phone)
	}

	_, err = s.UpdateClient(ctx, "missing", domain.ClientPatch{Phone: strPtr("11912345678")})
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Errorf("missing client err = %v", err)
	}
}

// --------------------------------------------------
// Exclusão em cascata
// --------------------------------------------------

func TestStudio_DeleteClientCascades(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 2)
	ctx := context.Background()
	c, _ := seedClientWithSessions(t, s, "Ana", 3)
	other, otherIDs := seedClientWithSessions(t, s, "Beatriz", 1)

	if err := s.DeleteClient(ctx, c.ID); err != nil {
		t.Fatal(err)
	}

	st := s.State()
	if len(st.Clients) != 1 || st.Clients[0].ID != other.ID {
		t.Errorf("clients = %+v", st.Clients)
	}
	if len(st.Sessions) != 1 || st.Sessions[0].ID != otherIDs[0] {
		t.Errorf("sessions = %+v", st.Sessions)
	}
	if err := s.DeleteClient(ctx, c.ID); !httperr.IsBusiness(err, "client_not_found") {
		t.Errorf("second delete err = %v", err)
	}
}

func TestStudio_DeleteClientKeepsClientWhenSessionFails(t *testing.T) {
	repo := newFlakyRepo()
	s := newStudio(t, repo, 1)
	ctx := context.Background()
	c, ids := seedClientWithSessions(t, s, "Ana", 3)
	repo.failDeleteFor[ids[1]] = true

	err := s.DeleteClient(ctx, c.ID)
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != OpDeleteClient {
		t.Fatalf("err = %v", err)
	}

	if _, err := repo.GetClient(ctx, c.ID); err != nil {
		t.Errorf("client must survive a failed cascade: %v", err)
	}
	if len(s.State().Clients) != 1 {
		t.Error("client must stay in the cache")
	}

	if _, ok := s.FindSession(ids[0]); ok {
		t.Error("session deleted before the failure must leave the cache")
	}
	for _, id := range ids[1:] {
		if _, ok := s.FindSession(id); !ok {
			t.Errorf("session %s must stay cached", id)
		}
	}
}

// --------------------------------------------------
// Leituras
// --------------------------------------------------

func TestStudio_Views(t *testing.T) {
	s := newStudio(t, newFlakyRepo(), 1)
	ctx := context.Background()
	c, ids := seedClientWithSessions(t, s, "Ana", 3)

	if _, err := s.UpdatePaymentStatus(ctx, ids[0], domain.PaymentPago); err != nil {
		t.Fatal(err)
	}

	stats := s.DashboardStats()
	if stats.TotalClients != 1 {
		t.Errorf("TotalClients = %d", stats.TotalClients)
	}
	if stats.PendingPayments != 1000 {
		t.Errorf("PendingPayments = %v", stats.PendingPayments)
	}

	up := s.UpcomingSessions(2)
	if len(up) != 2 || up[0].ID != ids[0] {
		t.Errorf("upcoming = %+v", up)
	}

	if got := s.ListClients("ana"); len(got) != 1 || got[0].ID != c.ID {
		t.Errorf("search = %+v", got)
	}

	paid := s.ListSessions(domain.SessionFilter{PaymentStatus: string(domain.PaymentPago)})
	if len(paid) != 1 {
		t.Errorf("paid filter = %d", len(paid))
	}
	if sum := s.SessionSummary(domain.SessionFilter{}); sum.Total != 3 || sum.TotalValue != 1500 {
		t.Errorf("summary = %+v", sum)
	}
}
