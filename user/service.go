package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/ainaplanass/exam/capability"
	"github.com/ainaplanass/exam/storage"
)

// Option configures a Service.
type Option func(*Service)

// WithMailer replaces the default EmailService.
func WithMailer(m Mailer) Option {
	return func(s *Service) { s.mailer = m }
}

// WithRepository replaces the service's private repository.
func WithRepository(r *Repository) Option {
	return func(s *Service) { s.repo = r }
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// Service registers and manages users. It depends on the storage.Database
// abstraction, never on a concrete backend.
type Service struct {
	db        storage.Database
	repo      *Repository
	mailer    Mailer
	validator Validator
	logger    *slog.Logger
}

// NewService creates a Service that records users in db.
func NewService(db storage.Database, opts ...Option) (*Service, error) {
	if capability.IsNil(db) {
		return nil, fmt.Errorf("user: service without database: %w", capability.ErrConstruction)
	}
	s := &Service{
		db:     db,
		repo:   NewRepository(),
		mailer: EmailService{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s, nil
}

// SaveUser stores the user in the repository and the database and reports
// where it was saved. A failed database write leaves the repository as it was.
func (s *Service) SaveUser(ctx context.Context, email, name string) (string, error) {
	if _, err := s.save(ctx, email, name); err != nil {
		return "", err
	}
	return fmt.Sprintf("Guardado en %s: %s", s.db.Name(), email), nil
}

func (s *Service) save(ctx context.Context, email, name string) (User, error) {
	u, err := s.repo.Save(User{Name: name, Email: email})
	if err != nil {
		return User{}, err
	}
	if err := s.db.Save(ctx, email, name); err != nil {
		s.repo.Delete(u.ID)
		return User{}, fmt.Errorf("user: save %s in %s: %w", email, s.db.Name(), err)
	}
	return u, nil
}

// CreateUser validates the input, saves the user and sends the welcome email.
// The user is only kept when the email was sent.
func (s *Service) CreateUser(ctx context.Context, name, email string) (User, error) {
	if err := s.validator.Validate(name, email); err != nil {
		return User{}, err
	}
	u, err := s.save(ctx, email, name)
	if err != nil {
		return User{}, err
	}
	if _, err := s.mailer.SendWelcome(email); err != nil {
		s.repo.Delete(u.ID)
		return User{}, fmt.Errorf("user: welcome email to %s: %w", email, err)
	}
	s.logger.Info("user created", "id", u.ID, "backend", s.db.Name())
	return u, nil
}

// GetUser returns the user with id.
func (s *Service) GetUser(id string) (User, error) {
	return s.repo.FindByID(id)
}

// UpdateUser validates and applies a new name and email.
func (s *Service) UpdateUser(ctx context.Context, id, name, email string) (User, error) {
	if err := s.validator.Validate(name, email); err != nil {
		return User{}, err
	}
	old, err := s.repo.FindByID(id)
	if err != nil {
		return User{}, err
	}
	u := old
	u.Name, u.Email = name, email
	if err := s.repo.Update(u); err != nil {
		return User{}, err
	}
	if err := s.db.Save(ctx, email, name); err != nil {
		if rerr := s.repo.Update(old); rerr != nil {
			s.logger.Error("restoring user after failed save", "id", id, "error", rerr)
		}
		return User{}, fmt.Errorf("user: save %s in %s: %w", email, s.db.Name(), err)
	}
	return u, nil
}

// ResetPassword sends the password reset email to the user.
func (s *Service) ResetPassword(id string) (string, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return "", err
	}
	msg, err := s.mailer.SendPasswordReset(u.Email)
	if err != nil {
		return "", fmt.Errorf("user: reset email to %s: %w", u.Email, err)
	}
	return msg, nil
}

// SetPassword stores a bcrypt hash of password.
func (s *Service) SetPassword(id, password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters", ErrInvalidPassword)
	}
	u, err := s.repo.FindByID(id)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("user: hash password: %w", err)
	}
	u.PasswordHash = hash
	return s.repo.Update(u)
}

// CheckPassword verifies password for the user registered with email.
func (s *Service) CheckPassword(email, password string) (User, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
			return User{}, ErrInvalidPassword
		}
		return User{}, fmt.Errorf("user: check password: %w", err)
	}
	return u, nil
}
