package db

import (
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

// Init opens the DB. MySQL is used when a DSN is given, SQLite otherwise.
// TranslateError is on so unique index violations surface as
// gorm.ErrDuplicatedKey regardless of the driver - slug uniqueness relies
// on that.
func Init(mysqlDSN, sqliteFile string) {
	var (
		db  *gorm.DB
		err error
	)
	conf := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}
	if mysqlDSN != "" {
		db, err = gorm.Open(mysql.Open(mysqlDSN), conf)
	} else {
		db, err = gorm.Open(sqlite.Open(sqliteFile), conf)
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
