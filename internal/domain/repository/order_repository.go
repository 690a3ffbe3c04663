package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

// OrderRepository lectura de órdenes para el motor de reportes.
// Las implementaciones son read-only.
type OrderRepository interface {
	// ListDone devuelve las órdenes en estado terminal "done" con createdAt
	// dentro de [from, to], con sus líneas cargadas. manufacturerID es un
	// recorte opcional ("" = todas); el motor re-filtra de todos modos, así
	// que el recorte es solo para reducir el volumen leído.
	ListDone(ctx context.Context, from, to time.Time, manufacturerID string) ([]entity.Order, error)
}
