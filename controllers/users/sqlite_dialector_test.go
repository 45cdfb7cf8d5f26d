package users

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/migrator"
	"gorm.io/gorm/schema"
)

// enumAsTextDialector wraps the sqlite dialector so the models' MySQL
// enum('…') column tags migrate as TEXT; sqlite has no enum DDL.
type enumAsTextDialector struct{ gorm.Dialector }

func (d enumAsTextDialector) DataTypeOf(f *schema.Field) string {
	if strings.HasPrefix(strings.ToLower(string(f.DataType)), "enum(") {
		return "text"
	}
	return d.Dialector.DataTypeOf(f)
}

func (d enumAsTextDialector) Migrator(db *gorm.DB) gorm.Migrator {
	return sqlite.Migrator{Migrator: migrator.Migrator{Config: migrator.Config{
		DB:                          db,
		Dialector:                   d,
		CreateIndexAfterCreateTable: true,
	}}}
}
