package entity

import (
	"context"

	"github.com/finds-lab/backend/pkg/xcontext"
)

// MigrateTable creates or alters every table with the gorm migrator. It is
// used by tests and local setups; production schemas are managed by the
// migration package.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Find{},
		&Answer{},
		&APIKey{},
	)
}
