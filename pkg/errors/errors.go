package errors

import "errors"

// ErrDuplicateKey 唯一约束冲突：同键记录已存在
// 由 Repository 层在捕获 PostgreSQL 23505 错误时返回，Service 层映射为业务错误
var ErrDuplicateKey = errors.New("记录已存在")
