package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUpstream     = errors.New("servicio externo falló")
	ErrStorage      = errors.New("error de persistencia")
)

// ValidationError campo requerido ausente o con formato inválido (HTTP 400).
type ValidationError struct {
	Fields  []string
	Message string
}

// NewValidationError construye el error con el mensaje y los campos involucrados.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NotFoundError la entidad referenciada no existe (HTTP 404).
type NotFoundError struct {
	Entity string
	Key    string
}

// NewNotFoundError construye el error para la entidad y su clave.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s no encontrado: %s", e.Entity, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UpstreamError fallo del host de imágenes u otro servicio externo (HTTP 500 con mensaje del upstream).
type UpstreamError struct {
	Service string
	Err     error
}

// NewUpstreamError envuelve err como fallo del servicio indicado.
func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// StorageError cualquier otro fallo de persistencia (HTTP 500).
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError envuelve err con la operación que falló.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() []error { return []error{ErrStorage, e.Err} }
