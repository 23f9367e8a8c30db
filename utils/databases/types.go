package databases

import "gorm.io/gorm"

// SqlConnection owns the lifecycle of the sqlite handle backing the
// source-configuration table.
type SqlConnection interface {
	GetDB() *gorm.DB
	IsConnected() bool
	Run() error
	Shutdown()
}
