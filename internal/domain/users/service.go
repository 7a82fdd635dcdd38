package users

import (
	"context"
	"strings"
	"time"

	"vet-records/internal/platform/apperr"
	"vet-records/internal/platform/logger"

	"github.com/juju/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound           = apperr.NotFound("User not found")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid credentials")
	ErrEmailTaken         = apperr.Duplicate("Email already registered")
	ErrUsernameTaken      = apperr.Duplicate("Username already taken")
	ErrUsernameHasAt      = apperr.Invalid("Username cannot contain '@'")
	ErrPasswordTooLong    = apperr.Invalidf("Password must be at most %d bytes", MaxPasswordBytes)
)

type Options struct {
	// AllowedEmailDomains: sufijos aceptados en el registro ("@uncc.edu").
	AllowedEmailDomains []string
	Logger              logger.Logger

	// HashCost de bcrypt; 0 usa bcrypt.DefaultCost.
	HashCost int
}

type Service struct {
	repo    Repository
	log     logger.Logger
	domains []string
	cost    int
	now     func() time.Time
}

func NewService(repo Repository, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = logger.NewDiscard()
	}
	cost := opts.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	domains := make([]string, 0, len(opts.AllowedEmailDomains))
	for _, d := range opts.AllowedEmailDomains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			domains = append(domains, d)
		}
	}
	return &Service{
		repo:    repo,
		log:     log.With(map[string]any{"module": "users"}),
		domains: domains,
		cost:    cost,
		now:     time.Now,
	}
}

type RegisterInput struct {
	Email    string
	Username string
	Password string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if email == "" || username == "" || in.Password == "" {
		return User{}, apperr.Invalid("Email, username and password are required")
	}
	if !s.allowedEmail(email) {
		return User{}, apperr.Invalidf("Email must end with %s", strings.Join(s.domains, " or "))
	}
	if strings.Contains(username, "@") {
		return User{}, ErrUsernameHasAt
	}
	if len(in.Password) > MaxPasswordBytes {
		return User{}, ErrPasswordTooLong
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, errors.Annotate(err, "lookup email")
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, errors.Annotate(err, "lookup username")
	}

	hash, err := hashPassword(in.Password, s.cost)
	if err != nil {
		return User{}, err
	}

	// el repo vuelve a chequear unicidad (carrera entre dos registros)
	u, err := s.repo.Create(ctx, User{
		Email:     email,
		Username:  username,
		Password:  hash,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return User{}, err
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID})
	return u, nil
}

// Login verifica credenciales. El cliente siempre recibe ErrInvalidCredentials;
// el motivo real queda solo en el log.
func (s *Service) Login(ctx context.Context, identifier, password string) (User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	var (
		u   User
		err error
	)
	if strings.Contains(identifier, "@") {
		u, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		u, err = s.repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Warn("login failed", map[string]any{"reason": "user not found"})
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Annotate(err, "lookup user")
	}

	ok, legacy := verifyPassword(u.Password, password)
	if !ok {
		s.log.Warn("login failed", map[string]any{"reason": "wrong password", "user_id": u.ID})
		return User{}, ErrInvalidCredentials
	}

	if legacy {
		s.upgradeLegacyPassword(ctx, &u, password)
	}
	return u, nil
}

// upgradeLegacyPassword re-hashea una contraseña en texto plano. Si falla,
// el login igual procede; se reintenta en el próximo.
func (s *Service) upgradeLegacyPassword(ctx context.Context, u *User, plain string) {
	hash, err := hashPassword(plain, s.cost)
	if err == nil {
		err = s.repo.UpdatePassword(ctx, u.ID, hash)
	}
	if err != nil {
		s.log.Error("legacy password upgrade failed", map[string]any{"user_id": u.ID, "error": err})
		return
	}
	u.Password = hash
	s.log.Info("legacy password upgraded", map[string]any{"user_id": u.ID})
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Exists devuelve ErrNotFound si el usuario no existe. Lo usan los demás
// módulos para validar user_id sin importar este paquete.
func (s *Service) Exists(ctx context.Context, id int64) error {
	_, err := s.GetByID(ctx, id)
	return err
}

func (s *Service) allowedEmail(email string) bool {
	for _, d := range s.domains {
		if strings.HasSuffix(email, d) && len(email) > len(d) {
			return true
		}
	}
	return false
}
