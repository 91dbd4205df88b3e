package models

// RequestStatus represents the lifecycle state of an adjudicated
// financial request. Transitions are one-way from pending to a
// terminal state.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusRejected  RequestStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusCompleted || s == RequestStatusRejected
}
