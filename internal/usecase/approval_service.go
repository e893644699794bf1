package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ShubhamShuklaX/Tournify/internal/domain/role"
	"github.com/ShubhamShuklaX/Tournify/internal/domain/user"
	"github.com/ShubhamShuklaX/Tournify/internal/platform/logging"
)

const (
	ApprovalDecisionApprove = "approve"
	ApprovalDecisionReject  = "reject"

	maxRejectionReasonLength = 500
)

type ReviewProfileInput struct {
	UserID     string
	ReviewerID string
	Decision   string
	Reason     string
}

// ApprovalService lets a director approve or reject accounts whose role
// needs sign-off before a session is allowed.
type ApprovalService struct {
	profileRepo user.ProfileRepository
	logger      *logging.Logger
	now         func() time.Time
}

func NewApprovalService(profileRepo user.ProfileRepository, logger *logging.Logger) *ApprovalService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ApprovalService{
		profileRepo: profileRepo,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ApprovalService) ListPendingProfiles(ctx context.Context) ([]user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApprovalService.ListPendingProfiles")
	defer span.End()

	items, err := s.profileRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending profiles: %w", err)
	}

	out := make([]user.Profile, 0, len(items))
	for _, item := range items {
		if role.RequiresApproval(item.Role) {
			out = append(out, item)
		}
	}
	return out, nil
}

// ReviewProfile records an approve or reject decision. A rejected account can
// be approved later; approving twice is a conflict.
func (s *ApprovalService) ReviewProfile(ctx context.Context, input ReviewProfileInput) (user.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ApprovalService.ReviewProfile")
	defer span.End()

	userID := strings.TrimSpace(input.UserID)
	reviewerID := strings.TrimSpace(input.ReviewerID)
	decision := strings.ToLower(strings.TrimSpace(input.Decision))
	reason := strings.TrimSpace(input.Reason)
	if userID == "" {
		return user.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if decision != ApprovalDecisionApprove && decision != ApprovalDecisionReject {
		return user.Profile{}, fmt.Errorf("%w: decision must be approve or reject, got %q", ErrInvalidInput, input.Decision)
	}
	if len(reason) > maxRejectionReasonLength {
		return user.Profile{}, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, maxRejectionReasonLength)
	}
	if userID == reviewerID {
		return user.Profile{}, fmt.Errorf("%w: reviewers cannot review their own account", ErrForbidden)
	}

	profile, exists, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return user.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return user.Profile{}, fmt.Errorf("%w: profile for user=%s", ErrNotFound, userID)
	}
	if !role.RequiresApproval(profile.Role) {
		return user.Profile{}, fmt.Errorf("%w: role %s does not need approval", ErrConflict, profile.Role)
	}
	if profile.Status() == user.ApprovalApproved {
		return user.Profile{}, fmt.Errorf("%w: user=%s is already approved", ErrConflict, userID)
	}

	reviewedAt := s.now().UTC()
	profile.ReviewedBy = reviewerID
	profile.ReviewedAt = &reviewedAt
	switch decision {
	case ApprovalDecisionApprove:
		profile.IsApproved = true
		profile.ApprovalStatus = user.ApprovalApproved
		profile.RejectionReason = ""
	case ApprovalDecisionReject:
		profile.IsApproved = false
		profile.ApprovalStatus = user.ApprovalRejected
		profile.RejectionReason = reason
	}

	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return user.Profile{}, fmt.Errorf("save profile review: %w", err)
	}

	s.logger.InfoContext(ctx, "profile reviewed",
		"user_id", profile.ID,
		"role", profile.Role,
		"status", profile.ApprovalStatus,
		"reviewed_by", reviewerID,
	)
	return profile, nil
}
