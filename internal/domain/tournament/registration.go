package tournament

import (
	"fmt"
	"time"
)

const (
	RegistrationPending   = "pending"
	RegistrationApproved  = "approved"
	RegistrationRejected  = "rejected"
	RegistrationWithdrawn = "withdrawn"
)

// Registration links a team to a tournament. Only approved registrations
// take part in scheduling and leaderboards.
type Registration struct {
	ID           string
	TournamentID string
	TeamID       string
	Status       string
	RegisteredBy string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (r Registration) IsApproved() bool {
	return r.Status == RegistrationApproved
}

// IsActive reports whether the registration still holds a slot or a pending request.
func (r Registration) IsActive() bool {
	return r.Status == RegistrationPending || r.Status == RegistrationApproved
}

// Review moves a registration to approved, rejected or withdrawn.
func (r Registration) Review(status string, now time.Time) (Registration, error) {
	switch status {
	case RegistrationApproved, RegistrationRejected:
		if r.Status != RegistrationPending {
			return r, fmt.Errorf("%w: registration %s -> %s", ErrInvalidTransition, r.Status, status)
		}
	case RegistrationWithdrawn:
		if !r.IsActive() {
			return r, fmt.Errorf("%w: registration %s -> %s", ErrInvalidTransition, r.Status, status)
		}
	default:
		return r, fmt.Errorf("%w: unknown registration status %q", ErrInvalidTransition, status)
	}
	r.Status = status
	r.UpdatedAt = now
	return r, nil
}

func RegistrationStatusLabel(status string) string {
	switch status {
	case RegistrationApproved:
		return "Approved"
	case RegistrationRejected:
		return "Rejected"
	case RegistrationWithdrawn:
		return "Withdrawn"
	default:
		return "Pending Approval"
	}
}

// ApprovedTeamIDs returns team ids of approved registrations in input order.
func ApprovedTeamIDs(items []Registration) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsApproved() {
			out = append(out, item.TeamID)
		}
	}
	return out
}
