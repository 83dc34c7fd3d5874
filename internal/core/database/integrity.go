package database

import (
	"errors"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Violation 提交时被存储层拒绝的完整性约束类别
type Violation int

const (
	NoViolation Violation = iota
	UniqueViolation
	ForeignKeyViolation
	OtherViolation // not null / check 等
)

func (v Violation) String() string {
	switch v {
	case UniqueViolation:
		return "unique"
	case ForeignKeyViolation:
		return "foreign_key"
	case OtherViolation:
		return "integrity"
	default:
		return "none"
	}
}

// ClassifyIntegrity 判断 err 是否为完整性约束错误；其它错误返回 NoViolation
func ClassifyIntegrity(err error) Violation {
	if err == nil {
		return NoViolation
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return UniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ForeignKeyViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505":
			return UniqueViolation
		case pgErr.Code == "23503":
			return ForeignKeyViolation
		case strings.HasPrefix(pgErr.Code, "23"):
			return OtherViolation
		}
		return NoViolation
	}

	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062, 1586:
			return UniqueViolation
		case 1216, 1217, 1451, 1452:
			return ForeignKeyViolation
		case 1048, 3819:
			return OtherViolation
		}
		return NoViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return UniqueViolation
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return ForeignKeyViolation
		}
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return classifyMessage(liteErr.Error(), OtherViolation)
		}
		return NoViolation
	}

	return classifyMessage(err.Error(), NoViolation)
}

// classifyMessage 驱动错误类型拿不到时按消息兜底（不依赖具体驱动版本）
func classifyMessage(msg string, fallback Violation) Violation {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "duplicate entry"),
		strings.Contains(msg, "unique violation"):
		return UniqueViolation
	case strings.Contains(msg, "foreign key constraint"):
		return ForeignKeyViolation
	}
	return fallback
}
