package domain

// DeliveryStatus represents the status of a delivery.
type DeliveryStatus string

// List of possible delivery statuses
const (
	StatusAvailable  DeliveryStatus = "available"
	StatusInProgress DeliveryStatus = "inProgress"
	StatusCompleted  DeliveryStatus = "completed"
	StatusCancelled  DeliveryStatus = "cancelled"
)

// List of allowed statuses
var allowedStatuses = [...]DeliveryStatus{
	StatusAvailable, StatusInProgress, StatusCompleted, StatusCancelled,
}

// Valid checks if the DeliveryStatus is valid
func (s DeliveryStatus) Valid() bool {
	for _, v := range allowedStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s DeliveryStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether moving from s to next respects the delivery
// lifecycle: available → inProgress → completed, with cancelled reachable
// from any non-terminal state.
func (s DeliveryStatus) CanTransition(next DeliveryStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusCancelled:
		return true
	case StatusInProgress:
		return s == StatusAvailable
	case StatusCompleted:
		return s == StatusInProgress
	default:
		return false
	}
}
