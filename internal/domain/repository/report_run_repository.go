package repository

import (
	"context"

	"github.com/jhoicas/Pagos-api/internal/domain/entity"
)

// ReportRunRepository auditoría de corridas del reporte.
type ReportRunRepository interface {
	Create(ctx context.Context, run *entity.ReportRun) error
}
