package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
)

// InsufficientStockError indica que una salida pide más unidades de las disponibles.
// Available trae el stock real al momento de la validación, para que el caller
// pueda reaccionar sin una consulta adicional.
type InsufficientStockError struct {
	ItemID    string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solo hay %d unidades disponibles", e.Available)
}

// StorageError envuelve fallas de la capa de persistencia (transacción, lock,
// timeout, conectividad). La operación completa se revierte; el engine no reintenta.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("error de almacenamiento en %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
