package studio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/BruksfildServices01/photo-studio/internal/audit"
	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	"github.com/BruksfildServices01/photo-studio/internal/timezone"
	"github.com/BruksfildServices01/photo-studio/internal/validators"
)

// ======================================================
// ERROS DE OPERAÇÃO
// ======================================================

const (
	OpLoad          = "load"
	OpAddClient     = "add_client"
	OpUpdateClient  = "update_client"
	OpDeleteClient  = "delete_client"
	OpAddSession    = "add_session"
	OpUpdateSession = "update_session"
	OpUpdateStatus  = "update_status"
	OpUpdatePayment = "update_payment"
	OpDeleteSession = "delete_session"
)

var opMessages = map[string]string{
	OpLoad:          "Falha ao carregar dados. Por favor, tente novamente.",
	OpAddClient:     "Falha ao adicionar cliente. Por favor, tente novamente.",
	OpUpdateClient:  "Falha ao atualizar cliente. Por favor, tente novamente.",
	OpDeleteClient:  "Falha ao excluir cliente. Por favor, tente novamente.",
	OpAddSession:    "Falha ao adicionar sessão. Por favor, tente novamente.",
	OpUpdateSession: "Falha ao atualizar sessão. Por favor, tente novamente.",
	OpUpdateStatus:  "Falha ao atualizar status. Por favor, tente novamente.",
	OpUpdatePayment: "Falha ao atualizar pagamento. Por favor, tente novamente.",
	OpDeleteSession: "Falha ao excluir sessão. Por favor, tente novamente.",
}

// OperationError é uma falha do armazenamento já traduzida para o usuário.
type OperationError struct {
	Op      string
	Message string
	Err     error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// ======================================================
// ESTADO
// ======================================================

type State struct {
	Clients   []domain.Client  `json:"clients"`
	Sessions  []domain.Session `json:"sessions"`
	Loading   bool             `json:"loading"`
	LastError string           `json:"last_error,omitempty"`
}

type Options struct {
	// RenameConcurrency limita as atualizações paralelas do nome do
	// cliente nas sessões (e das exclusões em cascata). Mínimo 1.
	RenameConcurrency int
	Now               func() time.Time
}

// Studio é a camada de orquestração: dono do cache de clientes e sessões.
// Mutações são serializadas; leitores sempre veem uma lista completa
// porque o cache é trocado por atribuição.
type Studio struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	validator   *validators.Validator
	log         *applog.Logger
	now         func() time.Time
	renameLimit int

	opMu sync.Mutex

	mu        sync.RWMutex
	clients   []domain.Client
	sessions  []domain.Session
	loading   bool
	lastError string
}

func New(
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	validator *validators.Validator,
	logger *applog.Logger,
	opts Options,
) *Studio {
	if opts.RenameConcurrency < 1 {
		opts.RenameConcurrency = 1
	}
	if opts.Now == nil {
		opts.Now = timezone.Now
	}

	return &Studio{
		repo:        repo,
		audit:       dispatcher,
		validator:   validator,
		log:         logger.WithComponent(applog.ComponentStudio),
		now:         opts.Now,
		renameLimit: opts.RenameConcurrency,
		clients:     []domain.Client{},
		sessions:    []domain.Session{},
	}
}

// ======================================================
// CARGA
// ======================================================

// Load busca clientes e sessões do armazenamento e substitui o cache.
// É o único ponto que limpa o lastError.
func (s *Studio) Load(ctx context.Context) error {
	s.begin()
	defer s.end()

	clients, err := s.repo.ListClients(ctx)
	if err != nil {
		return s.fail(ctx, OpLoad, err)
	}

	sessions, err := s.repo.ListSessions(ctx)
	if err != nil {
		return s.fail(ctx, OpLoad, err)
	}

	s.mu.Lock()
	s.clients = clients
	s.sessions = sessions
	s.lastError = ""
	s.mu.Unlock()

	s.log.InfoContext(ctx, "studio data loaded",
		applog.FieldOperation, applog.OpLoad,
		"clients", len(clients),
		"sessions", len(sessions),
	)
	return nil
}

// State devolve uma cópia do estado visível à apresentação.
func (s *Studio) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return State{
		Clients:   append([]domain.Client{}, s.clients...),
		Sessions:  append([]domain.Session{}, s.sessions...),
		Loading:   s.loading,
		LastError: s.lastError,
	}
}

func (s *Studio) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// ======================================================
// INTERNOS
// ======================================================

func (s *Studio) begin() {
	s.opMu.Lock()
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *Studio) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.opMu.Unlock()
}

// fail registra a falha de armazenamento, grava o lastError e devolve o
// erro traduzido.
func (s *Studio) fail(ctx context.Context, op string, err error) error {
	msg := opMessages[op]

	s.log.ErrorContext(ctx, "studio operation failed",
		applog.FieldOperation, op,
		applog.FieldError, err.Error(),
	)

	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()

	return &OperationError{Op: op, Message: msg, Err: err}
}

func (s *Studio) dispatch(ctx context.Context, action, entity, id string, meta any) {
	s.audit.Dispatch(audit.Event{
		UserID:   actorFrom(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: audit.StringPtr(id),
		Metadata: meta,
		At:       s.now(),
	})
}

type actorKey struct{}

// WithActor marca o usuário autenticado responsável pelas mutações.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func actorFrom(ctx context.Context) *string {
	if id, ok := ctx.Value(actorKey{}).(string); ok {
		return audit.StringPtr(id)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
