package studio

import "context"

// Repository é o colaborador de armazenamento. Ids e timestamps são
// atribuídos por ele; ids inexistentes devolvem ErrNotFound.
type Repository interface {
	// -------- Client --------
	ListClients(ctx context.Context) ([]Client, error)
	GetClient(ctx context.Context, id string) (*Client, error)
	CreateClient(ctx context.Context, c Client) (*Client, error)
	UpdateClient(ctx context.Context, id string, patch ClientPatch) (*Client, error)
	DeleteClient(ctx context.Context, id string) error

	// -------- Session --------
	ListSessions(ctx context.Context) ([]Session, error)
	ListSessionsByClient(ctx context.Context, clientID string) ([]Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	CreateSession(ctx context.Context, s Session) (*Session, error)
	UpdateSession(ctx context.Context, id string, patch SessionPatch) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}
