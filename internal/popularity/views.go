package popularity

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/emilythestrangee/metalnews/backend/internal/models"
)

// RecordView adds one view to the target. Every page load counts; there is
// no per-visitor deduplication and no locking beyond the single UPDATE.
func (r *Ranker) RecordView(ctx context.Context, target models.Target) error {
	table, err := target.Kind.Table()
	if err != nil {
		return err
	}

	res := r.db.WithContext(ctx).Table(table).
		Where("id = ?", target.ID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if res.Error != nil {
		return fmt.Errorf("record view %s: %w", target, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTargetNotFound
	}
	return nil
}
