package repo

import (
	"ad-board/internal/core/database"
	"ad-board/internal/domain"
)

// conflictMessages 每种实体按约束类别给出对外消息
type conflictMessages map[database.Violation]string

var (
	userConflicts = conflictMessages{
		database.UniqueViolation: "user already exists",
		database.OtherViolation:  "user violates a storage constraint",
	}
	advertisementConflicts = conflictMessages{
		database.ForeignKeyViolation: "user does not exist",
		database.UniqueViolation:     "advertisement already exists",
		database.OtherViolation:      "advertisement violates a storage constraint",
	}
)

// translate 只把提交时的完整性错误转成 Conflict，其它错误原样上抛
func (m conflictMessages) translate(err error) error {
	if err == nil {
		return nil
	}
	v := database.ClassifyIntegrity(err)
	if v == database.NoViolation {
		return err
	}
	msg, ok := m[v]
	if !ok {
		msg = m[database.OtherViolation]
	}
	return domain.Conflict(msg, err)
}
