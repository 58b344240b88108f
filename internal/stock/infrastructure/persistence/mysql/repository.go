// Package mysql 基于 gorm 的仓储实现，支持 mysql/postgres/sqlite
package mysql

import (
	"context"
	"errors"

	"github.com/wyfcoding/talkstoque/internal/stock/domain"
	"github.com/wyfcoding/talkstoque/pkg/contextx"
	"github.com/wyfcoding/talkstoque/pkg/utils"
	"gorm.io/gorm"
)

// base 仓储公共部分
type base struct {
	db *gorm.DB
}

func (b base) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := contextx.GetTx(ctx).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return b.db.WithContext(ctx)
}

// likeClause 生成大小写不敏感的子串匹配条件
func likeClause(column string) string {
	return "LOWER(" + column + ") LIKE ? ESCAPE '" + utils.LikeEscape + "'"
}

// window 应用已规范化的分页参数，limit=0 生成 LIMIT 0
func window(q *gorm.DB, skip, limit int) *gorm.DB {
	return q.Offset(skip).Limit(limit)
}

// translate 将唯一约束冲突转换为 AlreadyExistsError
func translate(err error, constraint, message string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &domain.AlreadyExistsError{Constraint: constraint, Message: message}
	}
	return err
}

// checkAffected 删除未命中任何行时返回 NotFound
// 更新不使用：mysql 对值未变化的行返回 0
func checkAffected(res *gorm.DB, entity domain.Entity, id int64) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(entity, id)
	}
	return nil
}

func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
