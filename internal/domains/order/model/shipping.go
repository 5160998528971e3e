package model

import "strings"

// Bảng map status string của shipping aggregator -> OrderStatus
var shippingStatusMap = map[string]OrderStatus{
	"PICKUP SCHEDULED":   OrderStatusProcessing,
	"MANIFEST GENERATED": OrderStatusProcessing,
	"READY TO SHIP":      OrderStatusProcessing,

	"PICKED UP":        OrderStatusShipped,
	"SHIPPED":          OrderStatusShipped,
	"IN TRANSIT":       OrderStatusShipped,
	"OUT FOR DELIVERY": OrderStatusShipped,

	"DELIVERED": OrderStatusDelivered,

	"CANCELED":  OrderStatusCancelled,
	"CANCELLED": OrderStatusCancelled,

	"RTO INITIATED": OrderStatusReturned,
	"RTO DELIVERED": OrderStatusReturned,
	"RETURNED":      OrderStatusReturned,
}

// MapShippingStatus is case-insensitive; unknown strings return false
func MapShippingStatus(raw string) (OrderStatus, bool) {
	key := strings.Join(strings.Fields(strings.ToUpper(raw)), " ")
	status, ok := shippingStatusMap[key]
	return status, ok
}
