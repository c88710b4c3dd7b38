package domain

import "strings"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusDelivered OrderStatus = "DELIVERED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// statusSet is the closed set of legal statuses. The state machine is
// generic over membership: anything outside the set is rejected before
// any store mutation.
var statusSet = map[OrderStatus]bool{
	StatusPending:   true,
	StatusPaid:      true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// statusList preserves a stable order for error messages
var statusList = []OrderStatus{
	StatusPending,
	StatusPaid,
	StatusDelivered,
	StatusCancelled,
}

// ValidStatus reports whether s is a member of the status set
func ValidStatus(s OrderStatus) bool {
	return statusSet[s]
}

// StatusNames returns the valid statuses joined for error messages
func StatusNames() string {
	names := make([]string, len(statusList))
	for i, s := range statusList {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
