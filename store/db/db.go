// Package db selects the concrete database driver for a profile.
package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/mindsense/internal/profile"
	"github.com/hrygo/mindsense/store"
	"github.com/hrygo/mindsense/store/db/postgres"
	"github.com/hrygo/mindsense/store/db/sqlite"
)

// NewDBDriver creates a new database driver based on the profile.
func NewDBDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "sqlite":
		return sqlite.NewDB(profile)
	case "postgres":
		return postgres.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown db driver %q", profile.Driver)
	}
}
