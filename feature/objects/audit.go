package objects

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Operation names recorded in the audit trail.
const (
	OpUpload       = "upload"
	OpDelete       = "delete"
	OpDeletePrefix = "delete_prefix"
	OpCopy         = "copy"
)

// AuditEntry is one recorded mutating operation.
type AuditEntry struct {
	ID        uint   `gorm:"primaryKey"`
	Operation string `gorm:"size:16;index"`
	Bucket    string `gorm:"size:64;index"`
	ObjectKey string `gorm:"size:512"`
	SourceKey string `gorm:"size:512"`
	Succeeded bool
	Detail    string `gorm:"size:512"`
	CreatedAt time.Time
}

// TableName sets the audit table name.
func (AuditEntry) TableName() string {
	return "storage_audit"
}

// Recorder writes audit entries for mutating operations. It is best-effort:
// failures are logged, never surfaced to the caller. A nil Recorder or a
// Recorder without a database is a no-op.
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a recorder over the given database. Passing a nil db
// disables auditing. Migration failures also disable auditing rather than
// blocking startup.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	if db == nil {
		return &Recorder{logger: logger}
	}
	if err := db.AutoMigrate(&AuditEntry{}); err != nil {
		logger.Warn("Audit table migration failed, auditing disabled", zap.Error(err))
		return &Recorder{logger: logger}
	}
	return &Recorder{db: db, logger: logger}
}

// Record persists one operation outcome.
func (r *Recorder) Record(ctx context.Context, op, bucket, key, sourceKey string, opErr error) {
	if r == nil || r.db == nil {
		return
	}

	entry := AuditEntry{
		Operation: op,
		Bucket:    bucket,
		ObjectKey: key,
		SourceKey: sourceKey,
		Succeeded: opErr == nil,
	}
	if opErr != nil {
		entry.Detail = truncate(opErr.Error(), 512)
	}

	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		r.logger.Warn("Failed to record audit entry",
			zap.String("operation", op),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
