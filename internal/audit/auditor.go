package audit

import (
	"go.uber.org/zap"
)

// Auditor records mutations of the local collections as structured log entries.
// A nil *Auditor is valid and records nothing.
type Auditor struct {
	logger *zap.Logger
}

func NewAuditor(logger *zap.Logger) *Auditor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditor{logger: logger.Named("audit")}
}

// Record logs action against subject (a contact name, a number, a template key).
func (a *Auditor) Record(action AuditAction, subject string, fields ...zap.Field) {
	if a == nil {
		return
	}

	a.logger.Info("audit",
		append([]zap.Field{
			zap.String("action", string(action)),
			zap.String("subject", subject),
		}, fields...)...,
	)
}
