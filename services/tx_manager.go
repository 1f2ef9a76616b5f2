package services

import (
	"context"

	"gorm.io/gorm"
)

// TxManager wraps multi-repository writes in one database transaction. The
// folder service relies on it so that a subtree delete, or a create paired
// with its share rows, commits or rolls back as a unit.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
