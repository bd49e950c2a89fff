package postgres

import (
	"fmt"

	"github.com/GoSim-25-26J-441/archdesign/config"
)

// DSN returns cfg.DSN when set, otherwise builds a key/value DSN from the
// individual fields.
func DSN(cfg *config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name,
	)
}
