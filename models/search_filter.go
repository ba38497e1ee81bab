package models

import "time"

// SearchFilter is the fully-typed search request. Every field is optional;
// an absent field means "no constraint". Validation happens once, in the
// filter compiler; downstream code never sees raw request input.
type SearchFilter struct {
	Text             *string
	EmployeeID       *uint
	ManagerID        *uint
	Dimension        *Dimension
	MinRating        *int
	MaxRating        *int
	StartDate        *time.Time
	EndDate          *time.Time
	ContentLengthMin *int
	ContentLengthMax *int
	HasAttachments   *bool
	ApprovalStatus   *ApprovalStatus
	Source           *EvidenceSource
	TagIDs           []uint
	IncludeArchived  bool
	Page             int
	Limit            int
}

// ActorScope is the pre-authorized visibility window for a call, computed by
// the auth layer and passed in explicitly. An empty scope means unrestricted.
// The engine applies the scope; it never computes permissions itself.
type ActorScope struct {
	EmployeeIDs []uint
	ManagerID   *uint
}

// IsUnrestricted reports whether the scope imposes no visibility constraint
func (s ActorScope) IsUnrestricted() bool {
	return len(s.EmployeeIDs) == 0 && s.ManagerID == nil
}
