package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrCategoryInUse     = errors.New("categoría en uso")
	ErrDataIntegrity     = errors.New("datos de entrada inconsistentes")
)

// DataIntegrityError describe un dataset que no puede cargarse: columnas ausentes o
// una celda que no se pudo interpretar. Unwrap devuelve ErrDataIntegrity.
type DataIntegrityError struct {
	Dataset string   // ej. "purchase_report"
	Missing []string // columnas requeridas ausentes
	Row     int      // fila (1-based, incluye cabecera) de la celda inválida
	Column  string
	Value   string
}

func (e *DataIntegrityError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: faltan columnas requeridas: %s", e.Dataset, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: fila %d, columna %q: valor inválido %q", e.Dataset, e.Row, e.Column, e.Value)
}

func (e *DataIntegrityError) Unwrap() error { return ErrDataIntegrity }

// InsufficientStockError detalla la cantidad disponible frente a la solicitada.
type InsufficientStockError struct {
	Item      string
	Available string
	Requested string
	Unit      string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: disponible %s %s, solicitado %s %s",
		e.Item, e.Available, e.Unit, e.Requested, e.Unit)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// CategoryInUseError indica cuántos ítems bloquean el borrado.
type CategoryInUseError struct {
	Category string
	Items    int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("no se puede eliminar %q: %d ítems usan esta categoría", e.Category, e.Items)
}

func (e *CategoryInUseError) Unwrap() error { return ErrCategoryInUse }
