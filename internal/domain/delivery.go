package domain

// Delivery - struct representing a delivery document as observed by the dispatcher.
type Delivery struct {
	ID       string
	Title    string
	Status   DeliveryStatus
	UserID   string // client who placed the order
	DriverID string // empty until a driver accepts
}
