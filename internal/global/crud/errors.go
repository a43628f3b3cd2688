package crud

import (
	"errors"

	"lab-website/internal/global/response"
	"lab-website/internal/repository"
)

// StoreError 把仓储错误转换为请求错误
// 唯一约束与外键冲突回显在 field 上，目标不存在为 404，其余为数据库故障
func StoreError(err error, field, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return response.ErrNotFound
	case errors.Is(err, repository.ErrDuplicateEntry), errors.Is(err, repository.ErrForeignKey):
		if field == "" {
			return response.ErrBusinessRule.WithOrigin(err)
		}
		return response.ErrBusinessRule.WithField(field, msg).WithOrigin(err)
	default:
		return response.ErrDatabase.WithOrigin(err)
	}
}

// Taken 唯一性预检：found 为占用该值的记录 id，与 self 不同即冲突，新建时 self 为 0
func Taken(found uint, err error, self uint) (bool, error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return false, nil
	case err != nil:
		return false, response.ErrDatabase.WithOrigin(err)
	}
	return found != self, nil
}
