package studio

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
)

// ======================================================
// LISTAGEM
// ======================================================

// ListSessions lê do cache aplicando os filtros de status e pagamento.
func (s *Studio) ListSessions(filter domain.SessionFilter) []domain.Session {
	s.mu.RLock()
	sessions := s.sessions
	s.mu.RUnlock()

	return domain.FilterSessions(sessions, filter)
}

// ======================================================
// CRIAÇÃO
// ======================================================

// AddSession resolve o nome atual do cliente e aplica os status iniciais
// quando não informados.
func (s *Studio) AddSession(ctx context.Context, in domain.Session) (*domain.Session, error) {
	in = normalizeSession(in)
	if in.Status == "" {
		in.Status = domain.InitialStatus()
	}
	if in.PaymentStatus == "" {
		in.PaymentStatus = domain.InitialPaymentStatus()
	}
	if !in.Status.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}
	if err := domain.CanChangePayment(in.PaymentStatus); err != nil {
		return nil, err
	}

	if err := s.validator.Session(in, s.now(), true); err != nil {
		return nil, err
	}

	s.begin()
	defer s.end()

	client, err := s.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, s.fail(ctx, OpAddSession, err)
	}
	in.ClientName = client.Name

	created, err := s.repo.CreateSession(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, OpAddSession, err)
	}

	s.appendSession(*created)
	s.dispatch(ctx, "session_created", "session", created.ID, map[string]any{
		"client_id": created.ClientID,
		"date":      created.Date,
	})

	return created, nil
}

// ======================================================
// ATUALIZAÇÃO
// ======================================================

// UpdateSession aplica o patch. clientName não é editável: quando o
// cliente muda, o nome é resolvido de novo.
func (s *Studio) UpdateSession(ctx context.Context, id string, patch domain.SessionPatch) (*domain.Session, error) {
	patch = normalizeSessionPatch(patch)
	patch.ClientName = nil

	s.begin()
	defer s.end()

	current, err := s.getSession(ctx, id, OpUpdateSession)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if patch.Status != nil {
		if err := domain.CanTransition(current.Status, *patch.Status); err != nil {
			return nil, err
		}
	}
	if patch.PaymentStatus != nil {
		if err := domain.CanChangePayment(*patch.PaymentStatus); err != nil {
			return nil, err
		}
	}

	dateChanged := patch.Date != nil && *patch.Date != current.Date
	if err := s.validator.Session(patch.Apply(*current), s.now(), dateChanged); err != nil {
		return nil, err
	}

	if patch.ClientID != nil && *patch.ClientID != current.ClientID {
		client, err := s.repo.GetClient(ctx, *patch.ClientID)
		if err != nil {
			if isNotFound(err) {
				return nil, httperr.ErrBusiness("client_not_found")
			}
			return nil, s.fail(ctx, OpUpdateSession, err)
		}
		name := client.Name
		patch.ClientName = &name
	}

	updated, err := s.repo.UpdateSession(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, s.fail(ctx, OpUpdateSession, err)
	}

	s.replaceSessions(*updated)
	s.dispatch(ctx, "session_updated", "session", id, nil)
	return updated, nil
}

// UpdateSessionStatus repetir o status atual não grava nada.
func (s *Studio) UpdateSessionStatus(ctx context.Context, id string, status domain.Status) (*domain.Session, error) {
	s.begin()
	defer s.end()

	current, err := s.getSession(ctx, id, OpUpdateStatus)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(current.Status, status); err != nil {
		return nil, err
	}
	if current.Status == status {
		return current, nil
	}

	updated, err := s.repo.UpdateSession(ctx, id, domain.SessionPatch{Status: &status})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, s.fail(ctx, OpUpdateStatus, err)
	}

	s.replaceSessions(*updated)
	s.dispatch(ctx, "session_status_changed", "session", id, map[string]any{
		"from": current.Status,
		"to":   status,
	})
	return updated, nil
}

func (s *Studio) UpdatePaymentStatus(ctx context.Context, id string, payment domain.PaymentStatus) (*domain.Session, error) {
	if err := domain.CanChangePayment(payment); err != nil {
		return nil, err
	}

	s.begin()
	defer s.end()

	current, err := s.getSession(ctx, id, OpUpdatePayment)
	if err != nil {
		return nil, err
	}
	if current.PaymentStatus == payment {
		return current, nil
	}

	updated, err := s.repo.UpdateSession(ctx, id, domain.SessionPatch{PaymentStatus: &payment})
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, s.fail(ctx, OpUpdatePayment, err)
	}

	s.replaceSessions(*updated)
	s.dispatch(ctx, "session_payment_changed", "session", id, map[string]any{
		"from": current.PaymentStatus,
		"to":   payment,
	})
	return updated, nil
}

// ======================================================
// EXCLUSÃO
// ======================================================

func (s *Studio) DeleteSession(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if err := s.repo.DeleteSession(ctx, id); err != nil {
		if isNotFound(err) {
			return httperr.ErrBusiness("session_not_found")
		}
		return s.fail(ctx, OpDeleteSession, err)
	}

	s.removeSessions(id)
	s.dispatch(ctx, "session_deleted", "session", id, nil)
	return nil
}

// ======================================================
// INTERNOS
// ======================================================

func (s *Studio) getSession(ctx context.Context, id, op string) (*domain.Session, error) {
	current, err := s.repo.GetSession(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("session_not_found")
		}
		return nil, s.fail(ctx, op, err)
	}
	return current, nil
}

func normalizeSession(in domain.Session) domain.Session {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.Date = strings.TrimSpace(in.Date)
	in.Time = strings.TrimSpace(in.Time)
	in.Location = strings.TrimSpace(in.Location)
	in.Notes = strings.TrimSpace(in.Notes)
	return in
}

func normalizeSessionPatch(p domain.SessionPatch) domain.SessionPatch {
	p.ClientID = trimPtr(p.ClientID)
	p.Date = trimPtr(p.Date)
	p.Time = trimPtr(p.Time)
	p.Location = trimPtr(p.Location)
	p.Notes = trimPtr(p.Notes)
	return p
}
