package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ValidationError lista TODOS los campos faltantes o inválidos de una precondición,
// no solo el primero, para que el caller pueda reportarlos de una sola vez.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validación fallida: campos faltantes o inválidos: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError construye el error con los campos ofensores (orden estable).
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// LinkingIncompleteError se retorna cuando se intenta avanzar a revisión de auditoría
// con ítems aceptados aún sin vincular al catálogo. Incluye hasta 3 descripciones de
// ejemplo y una pista de remediación para que la capa de presentación no pierda contexto.
type LinkingIncompleteError struct {
	UnlinkedCount int
	Examples      []string // máximo 3 descripciones de ítems sin vincular
	Hint          string
}

func (e *LinkingIncompleteError) Error() string {
	return fmt.Sprintf("vinculación incompleta: %d ítem(s) sin vincular (ej: %s). %s",
		e.UnlinkedCount, strings.Join(e.Examples, "; "), e.Hint)
}

// TerminalStateError indica una mutación sobre un certificado COMPLETED o REJECTED.
type TerminalStateError struct {
	Stage string
}

func (e *TerminalStateError) Error() string {
	return fmt.Sprintf("el certificado está en estado terminal %s y no admite mutaciones", e.Stage)
}
