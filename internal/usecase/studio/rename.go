package studio

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/photo-studio/internal/domain/studio"
)

// PropagateClientName copia newName para o clientName de cada sessão do
// cliente. As atualizações são independentes: após a primeira falha nada
// novo é disparado, o que já foi gravado fica gravado, e a função devolve
// as sessões atualizadas junto com o primeiro erro.
func PropagateClientName(
	ctx context.Context,
	repo domain.Repository,
	clientID string,
	newName string,
	limit int,
) ([]domain.Session, error) {

	sessions, err := repo.ListSessionsByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of client %s: %w", clientID, err)
	}

	var (
		mu      sync.Mutex
		updated = make([]domain.Session, 0, len(sessions))
	)

	err = fanOut(ctx, sessions, limit, func(s domain.Session) error {
		name := newName
		u, err := repo.UpdateSession(ctx, s.ID, domain.SessionPatch{ClientName: &name})
		if err != nil {
			return fmt.Errorf("update session %s: %w", s.ID, err)
		}
		mu.Lock()
		updated = append(updated, *u)
		mu.Unlock()
		return nil
	})

	return updated, err
}

// deleteSessions é a primeira fase da exclusão em cascata. Sessões que já
// não existem contam como excluídas.
func deleteSessions(
	ctx context.Context,
	repo domain.Repository,
	sessions []domain.Session,
	limit int,
) ([]string, error) {

	var (
		mu      sync.Mutex
		deleted = make([]string, 0, len(sessions))
	)

	err := fanOut(ctx, sessions, limit, func(s domain.Session) error {
		if err := repo.DeleteSession(ctx, s.ID); err != nil && !isNotFound(err) {
			return fmt.Errorf("delete session %s: %w", s.ID, err)
		}
		mu.Lock()
		deleted = append(deleted, s.ID)
		mu.Unlock()
		return nil
	})

	return deleted, err
}

// fanOut roda fn por sessão com no máximo limit em paralelo e para de
// agendar na primeira falha. As chamadas em voo usam o ctx original para
// que o resultado informado corresponda ao que foi gravado.
func fanOut(ctx context.Context, sessions []domain.Session, limit int, fn func(domain.Session) error) error {
	if limit < 1 {
		limit = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for _, s := range sessions {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(s)
		})
	}

	return g.Wait()
}
