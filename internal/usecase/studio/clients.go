package studio

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
	"github.com/BruksfildServices01/photo-studio/internal/httperr"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
)

// ======================================================
// LISTAGEM
// ======================================================

// ListClients lê do cache; query filtra por nome, email ou telefone.
func (s *Studio) ListClients(query string) []domain.Client {
	s.mu.RLock()
	clients := s.clients
	s.mu.RUnlock()

	return domain.SearchClients(clients, query)
}

// ======================================================
// CRIAÇÃO
// ======================================================

func (s *Studio) AddClient(ctx context.Context, in domain.Client) (*domain.Client, error) {
	in = normalizeClient(in)
	if err := s.validator.Client(in); err != nil {
		return nil, err
	}

	s.begin()
	defer s.end()

	created, err := s.repo.CreateClient(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, OpAddClient, err)
	}

	s.appendClient(*created)
	s.dispatch(ctx, "client_created", "client", created.ID, nil)

	return created, nil
}

// ======================================================
// ATUALIZAÇÃO
// ======================================================

// UpdateClient aplica o patch e, se o nome veio no patch, propaga o novo
// nome para as sessões do cliente. Se a propagação falhar no meio, o
// cliente e as sessões já atualizadas permanecem gravados.
func (s *Studio) UpdateClient(ctx context.Context, id string, patch domain.ClientPatch) (*domain.Client, error) {
	patch = normalizeClientPatch(patch)

	s.begin()
	defer s.end()

	current, err := s.repo.GetClient(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, s.fail(ctx, OpUpdateClient, err)
	}

	if err := s.validator.Client(patch.Apply(*current)); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateClient(ctx, id, patch)
	if err != nil {
		if isNotFound(err) {
			return nil, httperr.ErrBusiness("client_not_found")
		}
		return nil, s.fail(ctx, OpUpdateClient, err)
	}
	s.replaceClient(*updated)

	if patch.Name != nil {
		renamed, err := PropagateClientName(ctx, s.repo, id, updated.Name, s.renameLimit)
		s.replaceSessions(renamed...)
		if err != nil {
			return nil, s.fail(ctx, OpUpdateClient, err)
		}

		if current.Name != updated.Name {
			s.log.InfoContext(ctx, "client renamed",
				applog.FieldOperation, applog.OpRename,
				applog.FieldClientID, id,
				applog.FieldCount, len(renamed),
			)
			s.dispatch(ctx, "client_renamed", "client", id, map[string]any{
				"from":     current.Name,
				"to":       updated.Name,
				"sessions": len(renamed),
			})
		}
	}

	s.dispatch(ctx, "client_updated", "client", id, nil)
	return updated, nil
}

// ======================================================
// EXCLUSÃO EM CASCATA
// ======================================================

// DeleteClient exclui primeiro as sessões do cliente e só então o cliente.
// Se alguma sessão não puder ser excluída o cliente continua existindo.
func (s *Studio) DeleteClient(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if _, err := s.repo.GetClient(ctx, id); err != nil {
		if isNotFound(err) {
			return httperr.ErrBusiness("client_not_found")
		}
		return s.fail(ctx, OpDeleteClient, err)
	}

	sessions, err := s.repo.ListSessionsByClient(ctx, id)
	if err != nil {
		return s.fail(ctx, OpDeleteClient, err)
	}

	deleted, err := deleteSessions(ctx, s.repo, sessions, s.renameLimit)
	s.removeSessions(deleted...)
	if err != nil {
		return s.fail(ctx, OpDeleteClient, err)
	}

	if err := s.repo.DeleteClient(ctx, id); err != nil && !isNotFound(err) {
		return s.fail(ctx, OpDeleteClient, err)
	}
	s.removeClient(id)

	s.dispatch(ctx, "client_deleted", "client", id, map[string]any{
		"sessions_deleted": len(deleted),
	})
	return nil
}

// ======================================================
// NORMALIZAÇÃO
// ======================================================

func normalizeClient(c domain.Client) domain.Client {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	c.Notes = strings.TrimSpace(c.Notes)
	return c
}

func normalizeClientPatch(p domain.ClientPatch) domain.ClientPatch {
	p.Name = trimPtr(p.Name)
	p.Email = trimPtr(p.Email)
	p.Phone = trimPtr(p.Phone)
	p.Address = trimPtr(p.Address)
	p.Notes = trimPtr(p.Notes)
	return p
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	return &t
}
