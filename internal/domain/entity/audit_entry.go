package entity

import "time"

// Acciones registradas en la auditoría.
const (
	AuditActionInsert = "INSERT"
)

// Entidades auditables.
const (
	AuditEntityMovement = "movements"
)

// AuditEntry registra quién hizo qué. Se escribe en la misma transacción que el
// movimiento que la origina y nunca se actualiza ni se borra. Detail debe
// permitir reconstruir la intención sin consultar la fila del movimiento.
type AuditEntry struct {
	ID        string
	ActorID   string // operador que ejecutó la acción
	Action    string
	Entity    string
	EntityID  string
	Detail    string
	CreatedAt time.Time
}
