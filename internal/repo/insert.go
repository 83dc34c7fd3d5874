package repo

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// insertReturningID 只让数据库回传主键；其余默认列交给随后的查询读取，
// sqlite 的 RETURNING 列不带声明类型，时间列无法扫描
func insertReturningID(db *gorm.DB, model any) error {
	return db.Omit(clause.Associations).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(model).Error
}
