package enums

import "fmt"

// ListStatus is the lifecycle status of a client-facing wine list.
//
// There is deliberately no enforced transition graph: bulk status updates may
// move a list from any status to any other. Client submissions are the only
// path that checks the current status (created → submitted).
type ListStatus string

const (
	ListStatusCreated   ListStatus = "created"
	ListStatusSubmitted ListStatus = "submitted"
	ListStatusConfirmed ListStatus = "confirmed"
	ListStatusDelivered ListStatus = "delivered"
	ListStatusFinalized ListStatus = "finalized"
	ListStatusArchived  ListStatus = "archived"
)

var validListStatuses = []ListStatus{
	ListStatusCreated,
	ListStatusSubmitted,
	ListStatusConfirmed,
	ListStatusDelivered,
	ListStatusFinalized,
	ListStatusArchived,
}

// String implements fmt.Stringer.
func (s ListStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ListStatus.
func (s ListStatus) IsValid() bool {
	for _, candidate := range validListStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseListStatus converts raw input into a ListStatus.
func ParseListStatus(value string) (ListStatus, error) {
	for _, candidate := range validListStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wine list status %q", value)
}
