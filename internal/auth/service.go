package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/photo-studio/internal/infra/kv"
	applog "github.com/BruksfildServices01/photo-studio/internal/log"
	"github.com/BruksfildServices01/photo-studio/internal/models"
	"github.com/BruksfildServices01/photo-studio/internal/validators"
)

const minPasswordLength = 6

// User é a visão pública da conta.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Result segue o contrato {user, error}: em sucesso Error é vazio.
type Result struct {
	User  *User  `json:"user"`
	Token string `json:"token,omitempty"`
	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}

func (r Result) OK() bool {
	return r.Code == ""
}

func failed(code string) Result {
	return Result{Code: code, Error: MessageFor(code)}
}

type Options struct {
	Secret            []byte
	TokenTTL          time.Duration
	AllowRegistration bool
	CheckEmailDomain  bool
	LoginLimit        int64
	LoginWindow       time.Duration
	ResetTokenTTL     time.Duration
	// BcryptCost zero usa bcrypt.DefaultCost.
	BcryptCost int
	Now        func() time.Time
}

type Service struct {
	users  UserStore
	kv     kv.Store
	mailer Mailer
	log    *applog.Logger
	opts   Options
}

func NewService(users UserStore, store kv.Store, mailer Mailer, logger *applog.Logger, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = time.Hour
	}

	return &Service{
		users:  users,
		kv:     store,
		mailer: mailer,
		log:    logger.WithComponent(applog.ComponentAuth),
		opts:   opts,
	}
}

func (s *Service) now() time.Time {
	return s.opts.Now()
}

// ======================================================
// LOGIN / REGISTRO
// ======================================================

func (s *Service) Login(ctx context.Context, email, password string) Result {
	email = normalizeEmail(email)
	if !validators.ValidateEmail(email) {
		return failed(CodeInvalidEmail)
	}

	if s.opts.LoginLimit > 0 {
		ok, attempts, err := s.kv.AllowRate(ctx, kv.PrefixLoginAttempts+email, s.opts.LoginLimit, s.opts.LoginWindow)
		if err != nil {
			s.log.ErrorContext(ctx, "login rate limit unavailable", applog.FieldError, err.Error())
			return failed(CodeNetworkFailed)
		}
		if !ok {
			s.log.WarnContext(ctx, "login blocked", "email", email, applog.FieldCount, attempts)
			return failed(CodeTooManyRequests)
		}
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return s.storeFailure(ctx, err)
	}
	if u.Disabled {
		return failed(CodeUserDisabled)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return failed(CodeWrongPassword)
	}

	// login bem-sucedido zera o contador
	if err := s.kv.Del(ctx, kv.PrefixLoginAttempts+email); err != nil {
		s.log.WarnContext(ctx, "failed to reset login attempts", applog.FieldError, err.Error())
	}

	return s.signedIn(ctx, u)
}

func (s *Service) Register(ctx context.Context, email, password, displayName string) Result {
	if !s.opts.AllowRegistration {
		return failed(CodeOperationNotAllowed)
	}

	email = normalizeEmail(email)
	if !validators.ValidateEmail(email) {
		return failed(CodeInvalidEmail)
	}
	if s.opts.CheckEmailDomain && !validators.IsEmailDomainValid(email) {
		return failed(CodeInvalidEmail)
	}
	if len(password) < minPasswordLength {
		return failed(CodeWeakPassword)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to hash password", applog.FieldError, err.Error())
		return failed(codeInternal)
	}

	u := &models.User{
		DisplayName:  strings.TrimSpace(displayName),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, ErrEmailInUse) {
			return failed(CodeEmailAlreadyInUse)
		}
		return s.storeFailure(ctx, err)
	}

	s.log.InfoContext(ctx, "user registered", applog.FieldUserID, u.ID)
	return s.signedIn(ctx, u)
}

// ======================================================
// SESSÃO
// ======================================================

// Logout revoga o token até a expiração dele.
func (s *Service) Logout(ctx context.Context, token string) Result {
	claims, err := s.parseToken(token)
	if err != nil {
		return failed(CodeInvalidCredential)
	}

	if err := s.kv.Set(ctx, kv.PrefixRevoked+claims.ID, claims.Subject, s.remaining(claims)); err != nil {
		s.log.ErrorContext(ctx, "failed to revoke token", applog.FieldError, err.Error())
		return failed(CodeNetworkFailed)
	}
	return Result{}
}

// Authenticate valida o token e confere se não foi revogado.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, newError(CodeInvalidCredential)
	}

	revoked, err := s.kv.Get(ctx, kv.PrefixRevoked+claims.ID)
	if err != nil {
		return nil, newError(CodeNetworkFailed)
	}
	if revoked != "" {
		return nil, newError(CodeInvalidCredential)
	}
	return claims, nil
}

func (s *Service) CurrentUser(ctx context.Context, userID string) Result {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return s.storeFailure(ctx, err)
	}
	if u.Disabled {
		return failed(CodeUserDisabled)
	}
	return Result{User: publicUser(u)}
}

// ======================================================
// REDEFINIÇÃO DE SENHA
// ======================================================

func (s *Service) ResetPassword(ctx context.Context, email string) Result {
	email = normalizeEmail(email)
	if !validators.ValidateEmail(email) {
		return failed(CodeInvalidEmail)
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return s.storeFailure(ctx, err)
	}

	token := uuid.NewString()
	if err := s.kv.Set(ctx, kv.PrefixReset+token, u.ID, s.opts.ResetTokenTTL); err != nil {
		s.log.ErrorContext(ctx, "failed to store reset token", applog.FieldError, err.Error())
		return failed(CodeNetworkFailed)
	}

	if err := s.mailer.SendPasswordReset(ctx, u.Email, token); err != nil {
		s.log.ErrorContext(ctx, "failed to send reset email", applog.FieldError, err.Error())
		return failed(CodeNetworkFailed)
	}
	return Result{}
}

// ConfirmPasswordReset troca a senha e consome o token.
func (s *Service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) Result {
	if len(newPassword) < minPasswordLength {
		return failed(CodeWeakPassword)
	}

	key := kv.PrefixReset + strings.TrimSpace(token)
	userID, err := s.kv.Get(ctx, key)
	if err != nil {
		return failed(CodeNetworkFailed)
	}
	if userID == "" {
		return failed(CodeInvalidCredential)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.opts.BcryptCost)
	if err != nil {
		return failed(codeInternal)
	}
	if err := s.users.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return s.storeFailure(ctx, err)
	}

	if err := s.kv.Del(ctx, key); err != nil {
		s.log.WarnContext(ctx, "failed to consume reset token", applog.FieldError, err.Error())
	}
	s.log.InfoContext(ctx, "password reset", applog.FieldUserID, userID)
	return Result{}
}

// ======================================================
// INTERNOS
// ======================================================

func (s *Service) signedIn(ctx context.Context, u *models.User) Result {
	token, err := s.issueToken(u)
	if err != nil {
		s.log.ErrorContext(ctx, "failed to sign token", applog.FieldError, err.Error())
		return failed(codeInternal)
	}
	return Result{User: publicUser(u), Token: token}
}

func (s *Service) storeFailure(ctx context.Context, err error) Result {
	if errors.Is(err, ErrUserNotFound) {
		return failed(CodeUserNotFound)
	}
	s.log.ErrorContext(ctx, "user store failure", applog.FieldError, err.Error())
	return failed(CodeNetworkFailed)
}

func publicUser(u *models.User) *User {
	return &User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
