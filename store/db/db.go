package db

import (
	"github.com/pkg/errors"

	"github.com/hrygo/recallsense/internal/profile"
	"github.com/hrygo/recallsense/store"
	"github.com/hrygo/recallsense/store/db/jsonfile"
)

// NewDriver creates a new store driver based on profile.
//
// The persisted state is a single human-inspectable JSON document with
// atomic full rewrites, so "jsonfile" is the only driver today. The
// Driver interface leaves room for others.
func NewDriver(profile *profile.Profile) (store.Driver, error) {
	switch profile.Driver {
	case "jsonfile":
		return jsonfile.NewDB(profile)
	default:
		return nil, errors.Errorf("unknown store driver %q: only 'jsonfile' is supported", profile.Driver)
	}
}
