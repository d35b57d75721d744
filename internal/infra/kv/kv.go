// Package kv guarda chaves efêmeras: contadores de tentativas de login,
// tokens revogados e tokens de redefinição de senha.
package kv

import (
	"context"
	"time"
)

// Store é o contrato comum do Redis e da versão em memória.
type Store interface {
	// AllowRate incrementa o contador de key dentro da janela e informa se
	// ainda está dentro do limite.
	AllowRate(ctx context.Context, key string, limit int64, window time.Duration) (bool, int64, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	// Get devolve "" quando a chave não existe.
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	Close() error
}

// Prefixos das chaves usadas pela autenticação.
const (
	PrefixLoginAttempts = "login:attempts:"
	PrefixRevoked       = "jwt:revoked:"
	PrefixReset         = "pwreset:"
)
