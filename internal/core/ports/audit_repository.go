package ports

import (
	"context"

	"github.com/foodsales/dashboard/internal/core/domain"
)

// AuditRepository stores navigations the gate refused.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AccessAuditEntry) error
}

// AuditRecorder accepts audit entries without blocking the request path.
type AuditRecorder interface {
	Record(entry domain.AccessAuditEntry)
}
