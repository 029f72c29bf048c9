package dbscope

import (
	"database/sql"

	"gorm.io/gorm"
)

// BindTx returns a gorm handle whose statements run on tx. A nil tx returns db
// unchanged, so repositories can call it unconditionally.
func BindTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	bound := db.Session(&gorm.Session{NewDB: true})
	bound.Statement.ConnPool = tx
	return bound
}

// ActiveWithRole restricts a users query to active profiles holding role.
func ActiveWithRole(role string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true).Where("role = ?", role)
	}
}
