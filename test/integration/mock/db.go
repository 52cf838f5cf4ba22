package mock

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Db wraps a private in-memory SQLite database for one scenario. Every
// scenario gets its own connection, so there is nothing to reset between
// scenarios and they cannot leak state into each other.
type Db struct {
	DbConn *gorm.DB
}

func NewDb(models ...any) *Db {
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to open test database: " + err.Error())
	}

	if err := conn.AutoMigrate(models...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &Db{DbConn: conn}
}
