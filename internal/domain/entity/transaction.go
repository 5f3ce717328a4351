package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TxTypePurchase      = "purchase"
	TxTypeKitchen       = "kitchen" // salida a cocina
	TxTypeManagerAdd    = "manager_add"
	TxTypeManagerEdit   = "manager_edit"
	TxTypeManagerDelete = "manager_delete"
)

// NoteManagerAdjustment marca los ajustes de cantidad hechos por el gerente.
const NoteManagerAdjustment = "Adjusted by Manager"

// RenamedFromPrefix encabeza la nota de manager_edit cuando un ítem cambia de nombre;
// le sigue el nombre anterior, bajo el cual queda su historial previo.
const RenamedFromPrefix = "renombrado desde "

// ValidTxType indica si t es un tipo de transacción conocido.
func ValidTxType(t string) bool {
	switch t {
	case TxTypePurchase, TxTypeKitchen, TxTypeManagerAdd, TxTypeManagerEdit, TxTypeManagerDelete:
		return true
	}
	return false
}

// Transaction entrada de auditoría (append-only) de un cambio de inventario.
type Transaction struct {
	ID        string
	ItemName  string
	Category  string
	Quantity  decimal.Decimal
	Unit      string
	Type      string
	UserID    string
	Username  string
	Rate      *decimal.Decimal
	Amount    *decimal.Decimal
	Vendor    string
	Notes     string
	CreatedAt time.Time
}

// TransactionFilter criterios de listado. Campos cero no filtran.
type TransactionFilter struct {
	Type  string
	From  time.Time // inclusive
	To    time.Time // exclusive
	Limit int
}
