package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突
// - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
// - PostgreSQL 23505: duplicate key value violates unique constraint
// - SQLite: UNIQUE constraint failed
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// isForeignKeyError 判断是否为外键约束失败
// - MySQL 1451/1452: a foreign key constraint fails
// - PostgreSQL 23503: violates foreign key constraint
// - SQLite: FOREIGN KEY constraint failed
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key constraint")
}

// duplicateColumn 从冲突信息中识别冲突字段（索引名或列名）
func duplicateColumn(err error, columns ...string) string {
	msg := err.Error()
	for _, col := range columns {
		if strings.Contains(msg, col) {
			return col
		}
	}
	return ""
}

// escapeLike 转义LIKE通配符，配合ESCAPE '!'使用
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
