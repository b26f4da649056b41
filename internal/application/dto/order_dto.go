package dto

import "time"

// CreateOrderRequest body para POST /api/orders. direction: OUTBOUND | INBOUND.
type CreateOrderRequest struct {
	ItemID    string `json:"item_id"`
	Quantity  int    `json:"quantity"`
	Direction string `json:"direction"`
	Branch    string `json:"branch,omitempty"`
}

// EditOrderQuantityRequest body para PATCH /api/orders/:id/quantity.
type EditOrderQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// OrderResponse representación HTTP de una orden.
type OrderResponse struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	Direction string    `json:"direction"`
	Status    string    `json:"status"`
	Branch    string    `json:"branch,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DeliveryResponse representación HTTP de una entrega.
type DeliveryResponse struct {
	ID          string     `json:"id"`
	OrderID     string     `json:"order_id"`
	ItemName    string     `json:"item_name"`
	Address     string     `json:"address"`
	Driver      string     `json:"driver,omitempty"`
	Vehicle     string     `json:"vehicle,omitempty"`
	Status      string     `json:"status"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// AdvanceDeliveryRequest body para PUT /api/deliveries/:id/status.
type AdvanceDeliveryRequest struct {
	Status  string `json:"status"`
	Driver  string `json:"driver,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}

// ScheduleDeliveryRequest body para POST /api/deliveries (programación manual
// de una orden OUTBOUND completada sin entrega).
type ScheduleDeliveryRequest struct {
	OrderID string `json:"order_id"`
	Address string `json:"address"`
	Driver  string `json:"driver,omitempty"`
	Vehicle string `json:"vehicle,omitempty"`
}
