package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/infra/db"
)

var once sync.Once
var database *Db

// Table names a migrated table and the GORM model used to inspect it.
type Table struct {
	Name  string
	Model any
}

type Db struct {
	DbConn *gorm.DB
	tables []Table
}

// NewDb opens one in-memory SQLite database for the whole suite and applies the
// real migrations. Tables are listed children first so ClearDB respects foreign keys.
func NewDb(tables ...Table) *Db {
	once.Do(func() {
		database = open(tables)
	})
	return database
}

func open(tables []Table) *Db {
	dbConn, err := db.OpenSQLite(":memory:")
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	sqlDB, err := dbConn.DB()
	if err != nil {
		panic(err)
	}
	if err := db.Migrate(sqlDB, dbConn.Dialector.Name()); err != nil {
		panic(fmt.Sprintf("failed to migrate database. err: %s", err.Error()))
	}

	return &Db{
		DbConn: dbConn,
		tables: tables,
	}
}

// ClearDB removes every row while keeping the schema.
func (d *Db) ClearDB() error {
	for _, table := range d.tables {
		if err := d.DbConn.Exec(fmt.Sprintf("DELETE FROM %s", table.Name)).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", table.Name, err)
		}
	}
	return nil
}

func (d *Db) GetModel(table string) (any, bool) {
	for _, t := range d.tables {
		if t.Name == table {
			return t.Model, true
		}
	}
	return nil, false
}
