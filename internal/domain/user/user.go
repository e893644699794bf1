package user

import (
	"context"
	"strings"
	"time"
)

const (
	ApprovalPending  = "pending"
	ApprovalApproved = "approved"
	ApprovalRejected = "rejected"
)

// Principal is the identity resolved from a bearer token.
type Principal struct {
	UserID string
	Email  string
	Role   string
}

// Profile is the application-side record of an authenticated user.
type Profile struct {
	ID              string
	Email           string
	FullName        string
	Role            string
	IsApproved      bool
	ApprovalStatus  string
	RejectionReason string
	ReviewedBy      string
	ReviewedAt      *time.Time
	CreatedAt       time.Time
}

func (p Profile) DisplayName() string {
	if name := strings.TrimSpace(p.FullName); name != "" {
		return name
	}
	return p.Email
}

// Status reports the approval state, deriving it from IsApproved for rows
// written before the status was tracked.
func (p Profile) Status() string {
	switch {
	case p.IsApproved:
		return ApprovalApproved
	case p.ApprovalStatus == ApprovalRejected:
		return ApprovalRejected
	default:
		return ApprovalPending
	}
}

// ProfileRepository describes profile persistence needs from use cases.
type ProfileRepository interface {
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
	// ListPending returns unapproved, unrejected profiles, oldest first.
	ListPending(ctx context.Context) ([]Profile, error)
	Upsert(ctx context.Context, item Profile) error
}
