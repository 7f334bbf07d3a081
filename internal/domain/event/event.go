package event

import (
	"context"
	"time"
)

// Names of the domain events pushed to the notification sink.
const (
	ContributionConfirmed = "contribution.confirmed"
	ContributionRejected  = "contribution.rejected"
	LoanApproved          = "loan.approved"
	LoanRejected          = "loan.rejected"
	LoanPaid              = "loan.paid"
	LoanDefaulted         = "loan.defaulted"
	InvestmentMatured     = "investment.matured"
	InvestmentDefaulted   = "investment.defaulted"
	MemberJoined          = "member.joined"
	MemberApproved        = "member.approved"
	GroupArchived         = "group.archived"
)

// Event is the notification payload: entity id + type + timestamp.
type Event struct {
	Name       string    `json:"name"`
	EntityType string    `json:"entity_type"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sink receives domain events after the owning transaction commits.
// Implementations must be best-effort: they never return an error to the
// caller and must not block the financial change.
type Sink interface {
	Publish(ctx context.Context, e Event)
}

// New builds an event stamped with the current UTC time.
func New(name, entityType, entityID string) Event {
	return Event{Name: name, EntityType: entityType, EntityID: entityID, OccurredAt: time.Now().UTC()}
}
