package mock

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/finance-tracker/core/internal/infra/db"
	"github.com/finance-tracker/core/internal/integration/persistence/model"
)

// Db keeps one private in-memory database per simulated device.
type Db struct {
	mu      sync.Mutex
	devices map[string]*db.Database
}

// NewDb creates an empty device registry.
func NewDb() *Db {
	return &Db{devices: make(map[string]*db.Database)}
}

// Device returns the database of the named device, creating and migrating it on first use.
func (d *Db) Device(name string) (*db.Database, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if database, ok := d.devices[name]; ok {
		return database, nil
	}

	database, err := db.NewInMemoryConnection()
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(); err != nil {
		return nil, err
	}

	for _, m := range model.All() {
		if !database.DB().Migrator().HasTable(m) {
			return nil, fmt.Errorf("table for model %T was not created", m)
		}
	}

	d.devices[name] = database
	return database, nil
}

// ClearDB removes every row from every device database.
func (d *Db) ClearDB() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for name, database := range d.devices {
		for _, m := range model.All() {
			err := database.DB().Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(m).Error
			if err != nil {
				return fmt.Errorf("failed to clear %T on %s: %w", m, name, err)
			}
		}
	}
	return nil
}
