package providers

import (
	"errors"
	"fmt"

	"github.com/gookit/validate"

	"fontpair/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}

	if cv.conf.Storage.Driver == "sqlite" && cv.conf.Storage.SqlitePath == "" {
		return errors.New("invalid config: storage.sqlitePath is required for the sqlite driver")
	}

	switch cv.conf.License.Backend {
	case "rest":
		if cv.conf.License.SupabaseURL == "" || cv.conf.License.AnonKey == "" {
			return errors.New("invalid config: license.supabaseUrl and license.anonKey are required for the rest backend")
		}
	case "postgres":
		if cv.conf.License.DatabaseURL == "" {
			return errors.New("invalid config: license.databaseUrl is required for the postgres backend")
		}
	}
	return nil
}
