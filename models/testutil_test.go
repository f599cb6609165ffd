package models

import (
	"strings"
	"testing"

	"server/db"
)

// Each test gets its own named in-memory database so state never leaks
// between tests.
func setupTestDB(t *testing.T) {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db.Init("", "file:"+name+"?mode=memory&cache=shared")
	if err := db.Instance.AutoMigrate(&User{}, &Album{}, &Memory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
