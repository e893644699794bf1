package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/session"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
	"github.com/cenkalti/backoff/v5"
)

var errProfileNotVisible = errors.New("profile not visible yet")

type SessionConfig struct {
	ProfileRetries        int
	ProfileInitialBackoff time.Duration
	ProfileMaxBackoff     time.Duration
}

type Session struct {
	Principal user.Principal `json:"-"`
	Profile   user.Profile   `json:"-"`
	State     session.State  `json:"state"`
}

// PrincipalVerifier resolves a bearer token to an identity.
type PrincipalVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

type SessionService struct {
	verifier    PrincipalVerifier
	profileRepo user.ProfileRepository
	cfg         SessionConfig
	logger      *logging.Logger
}

func NewSessionService(
	verifier PrincipalVerifier,
	profileRepo user.ProfileRepository,
	cfg SessionConfig,
	logger *logging.Logger,
) *SessionService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ProfileRetries <= 0 {
		cfg.ProfileRetries = 5
	}
	if cfg.ProfileInitialBackoff <= 0 {
		cfg.ProfileInitialBackoff = 200 * time.Millisecond
	}
	if cfg.ProfileMaxBackoff <= 0 {
		cfg.ProfileMaxBackoff = 2 * time.Second
	}

	return &SessionService{
		verifier:    verifier,
		profileRepo: profileRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// Resolve verifies token, then loads the profile with bounded retries for a
// profile row that is not visible yet. Unapproved accounts are refused unless
// their role does not need approval.
func (s *SessionService) Resolve(ctx context.Context, token string) (Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SessionService.Resolve")
	defer span.End()

	machine := session.NewMachine(nil)
	if err := machine.BeginAuth(); err != nil {
		return Session{}, err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		_ = machine.Fail(ErrUnauthorized)
		return Session{State: machine.State()}, fmt.Errorf("%w: token is required", ErrUnauthorized)
	}

	principal, err := s.verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		_ = machine.Fail(err)
		return Session{State: machine.State()}, err
	}
	if err := machine.Authenticated(); err != nil {
		return Session{}, err
	}

	profile, err := s.Profile(ctx, principal)
	if err != nil {
		_ = machine.Fail(err)
		return Session{Principal: principal, State: machine.State()}, err
	}

	if !profile.IsApproved && role.RequiresApproval(profile.Role) {
		cause := fmt.Errorf("%w: account for role %s is pending approval", ErrForbidden, profile.Role)
		if profile.Status() == user.ApprovalRejected {
			cause = fmt.Errorf("%w: account for role %s was rejected", ErrForbidden, profile.Role)
		}
		_ = machine.Fail(cause)
		return Session{Principal: principal, Profile: profile, State: machine.State()}, cause
	}

	if err := machine.ProfileLoaded(); err != nil {
		return Session{}, err
	}
	return Session{Principal: principal, Profile: profile, State: machine.State()}, nil
}

// Profile loads the profile of principal, retrying while it is not visible.
func (s *SessionService) Profile(ctx context.Context, principal user.Principal) (user.Profile, error) {
	userID := strings.TrimSpace(principal.UserID)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: principal has no user id", ErrUnauthorized)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.ProfileInitialBackoff
	policy.MaxInterval = s.cfg.ProfileMaxBackoff

	attempt := 0
	profile, err := backoff.Retry(ctx, func() (user.Profile, error) {
		attempt++
		item, exists, err := s.profileRepo.GetByID(ctx, userID)
		if err != nil {
			return user.Profile{}, backoff.Permanent(fmt.Errorf("get profile: %w", err))
		}
		if !exists {
			return user.Profile{}, errProfileNotVisible
		}
		return item, nil
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(uint(s.cfg.ProfileRetries)))
	if err != nil {
		if errors.Is(err, errProfileNotVisible) {
			s.logger.WarnContext(ctx, "profile not found after retries", "user_id", userID, "attempts", attempt)
			return user.Profile{}, fmt.Errorf("%w: profile for user=%s", ErrNotFound, userID)
		}
		return user.Profile{}, err
	}

	if profile.Role == "" {
		profile.Role = principal.Role
	}
	if profile.Email == "" {
		profile.Email = principal.Email
	}
	return profile, nil
}
