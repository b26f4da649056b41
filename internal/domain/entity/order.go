package entity

import "time"

// OrderDirection sentido logístico de la orden.
type OrderDirection string

const (
	// OrderOutbound orden de salida: un pedido de franquicia/sucursal que
	// descuenta stock central al completarse y genera una entrega.
	OrderOutbound OrderDirection = "OUTBOUND"
	// OrderInbound orden de entrada: un pedido a proveedor que suma stock
	// al confirmarse la recepción.
	OrderInbound OrderDirection = "INBOUND"
)

// OrderStatus estado del ciclo de vida de una orden.
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED" // terminal
)

// Order es una solicitud de mover stock (entrada o salida) con ciclo de vida
// PENDING → COMPLETED | CANCELLED y COMPLETED → CANCELLED (con reversa).
// Invariante: el stock se muta por una orden UNA sola vez, exactamente en la
// transición PENDING→COMPLETED, y se revierte exactamente en
// COMPLETED→CANCELLED; PENDING→CANCELLED nunca toca stock.
type Order struct {
	ID        string
	ItemID    string
	ItemName  string // denormalizado, como en el maestro de artículos
	Quantity  int
	Direction OrderDirection
	Status    OrderStatus
	Branch    string // sucursal de origen
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovementDirection dirección del asiento que produce la completación:
// salida descuenta (OUT), entrada suma (IN).
func (o *Order) MovementDirection() MovementDirection {
	if o.Direction == OrderOutbound {
		return MovementOUT
	}
	return MovementIN
}

// ReversalDirection dirección del asiento compensatorio al cancelar una
// orden completada: el opuesto exacto de MovementDirection.
func (o *Order) ReversalDirection() MovementDirection {
	if o.Direction == OrderOutbound {
		return MovementIN
	}
	return MovementOUT
}
