package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// table 各实体仓储共用的增删改查，写操作均在单个事务内完成
type table[T any] struct {
	db *gorm.DB
}

func (r table[T]) FindByID(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).First(&v, id).Error; err != nil {
		return nil, translate(err, "find by id")
	}
	return &v, nil
}

func (r table[T]) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Count(&n).Error
	return n, translate(err, "count")
}

// IDBy 按唯一列查找记录 id，column 只能是代码中的常量
func (r table[T]) IDBy(ctx context.Context, column string, value any) (uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(new(T)).
		Where(column+" = ?", value).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, translate(err, "find id by "+column)
	}
	if len(ids) == 0 {
		return 0, ErrNotFound
	}
	return ids[0], nil
}

func (r table[T]) Create(ctx context.Context, v *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Create(v).Error
	})
	return translate(err, "create")
}

// Update 整行覆盖 id 对应的记录（包括零值字段），完成后用数据库中的值回填 v
func (r table[T]) Update(ctx context.Context, id uint, v *T) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[T](tx, id); err != nil {
			return err
		}
		err := tx.Model(new(T)).
			Where("id = ?", id).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(v).Error
		if err != nil {
			return err
		}
		return tx.First(v, id).Error
	})
	return translate(err, "update")
}

func (r table[T]) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[T](tx, id); err != nil {
			return err
		}
		return tx.Delete(new(T), id).Error
	})
	return translate(err, "delete")
}

func exists[T any](tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
