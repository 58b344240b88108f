package mysql

import (
	"context"
	"fmt"

	"github.com/wyfcoding/talkstoque/pkg/logger"
	"gorm.io/gorm"
)

// Models 需要建表的全部模型
func Models() []any {
	return []any{
		&ProductModel{},
		&EmployeeModel{},
		&ClientModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SaleModel{},
		&StockMovementModel{},
	}
}

// AutoMigrate 创建缺失的表与索引
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate stock tables: %w", err)
	}
	logger.Info(ctx, "stock tables migrated", "count", len(Models()))
	return nil
}
