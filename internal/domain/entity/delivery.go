package entity

import "time"

// DeliveryStatus estado del ciclo de vida de una entrega.
type DeliveryStatus string

const (
	DeliveryPending   DeliveryStatus = "PENDING"
	DeliveryScheduled DeliveryStatus = "SCHEDULED"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED" // terminal
	DeliveryCancelled DeliveryStatus = "CANCELLED" // terminal
)

// deliveryRank orden de avance de los estados no terminales.
var deliveryRank = map[DeliveryStatus]int{
	DeliveryPending:   0,
	DeliveryScheduled: 1,
	DeliveryInTransit: 2,
	DeliveryDelivered: 3,
}

// Terminal indica si el estado no admite más transiciones.
func (s DeliveryStatus) Terminal() bool {
	return s == DeliveryDelivered || s == DeliveryCancelled
}

// CanAdvanceTo valida la transición: solo hacia adelante en el flujo
// PENDING → SCHEDULED → IN_TRANSIT → DELIVERED, y CANCELLED desde cualquier
// estado no terminal.
func (s DeliveryStatus) CanAdvanceTo(next DeliveryStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == DeliveryCancelled {
		return true
	}
	from, okFrom := deliveryRank[s]
	to, okTo := deliveryRank[next]
	return okFrom && okTo && to > from
}

// Delivery es el registro de cumplimiento físico de una orden OUTBOUND
// completada (uno a uno con la orden). No tiene cantidad propia: refleja la
// de su orden; editar "la cantidad de la entrega" es editar la de la orden.
// Invariante: existe si y solo si su orden está COMPLETED y es OUTBOUND;
// cancelar la orden cancela en cascada toda entrega no terminal.
type Delivery struct {
	ID          string
	OrderID     string
	ItemName    string
	Address     string
	Driver      string
	Vehicle     string
	Status      DeliveryStatus
	ScheduledAt *time.Time
	DeliveredAt *time.Time
	CreatedAt   time.Time
}
