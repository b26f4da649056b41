package entity

import (
	"fmt"
	"time"
)

// MovementDirection dirección de un asiento del libro de movimientos.
type MovementDirection string

const (
	MovementIN     MovementDirection = "IN"     // entrada
	MovementOUT    MovementDirection = "OUT"    // salida
	MovementADJUST MovementDirection = "ADJUST" // ajuste con signo
)

// Movement es un asiento inmutable del libro de movimientos de stock
// (append-only). La convención de signos es única y vive en SignedDelta:
// Quantity es magnitud positiva para IN/OUT (la dirección lleva el signo) y
// delta con signo para ADJUST. La suma de SignedDelta de todos los asientos de
// un artículo, aplicada a su stock inicial, debe igualar su stock actual en
// todo momento (invariante de conciliación).
type Movement struct {
	ID        string
	ItemID    string
	ItemName  string // denormalizado para el feed en vivo
	Direction MovementDirection
	Quantity  int
	Reason    string
	CausalRef string // vacío = asiento manual; si no, referencia causal única
	CreatedAt time.Time
}

// SignedDelta devuelve el efecto del asiento sobre el stock actual.
func (m *Movement) SignedDelta() int {
	switch m.Direction {
	case MovementIN:
		return m.Quantity
	case MovementOUT:
		return -m.Quantity
	default: // ADJUST: Quantity ya lleva el signo
		return m.Quantity
	}
}

// Manual indica si el asiento fue creado a mano (sin evento causal).
// Solo los asientos manuales admiten el deshacer administrativo.
func (m *Movement) Manual() bool { return m.CausalRef == "" }

// Referencias causales: una por evento lógico. El guard de idempotencia busca
// la referencia exacta antes de escribir, de modo que reconfirmar una orden o
// una transacción no duplique asientos.

// OrderCausalRef referencia del asiento generado al completar una orden.
func OrderCausalRef(orderID string) string { return "order:" + orderID }

// OrderReversalRef referencia del asiento compensatorio al cancelar una orden
// completada. Es distinta de la de completación: cancelar jamás reescribe
// historia, agrega un movimiento inverso nuevo.
func OrderReversalRef(orderID string) string { return "order-cancel:" + orderID }

// TransactionCausalRef referencia de los asientos de una transacción
// confirmada (una transacción puede generar un asiento por línea; todas las
// líneas comparten la referencia y el guard opera a nivel de transacción).
func TransactionCausalRef(txnID string) string { return "txn:" + txnID }

// OrderAdjustReason razón legible del asiento ADJUST al editar la cantidad de
// una orden completada. No lleva referencia causal: cada edición es un evento
// distinto.
func OrderAdjustReason(orderID string, delta int) string {
	return fmt.Sprintf("Ajuste de cantidad de orden #%s (delta %+d)", orderID, delta)
}
