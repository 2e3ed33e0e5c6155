package database

import (
	"strings"
	"testing"

	"decor-booking/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestDSNEscapesCredentials(t *testing.T) {
	config := utils.DatabaseConfig{
		Host:     "db.internal",
		Port:     "5432",
		Name:     "decor",
		User:     "app",
		Password: "p@ss w'rd",
		SSLMode:  "disable",
	}

	dsn := DSN(config)
	if !strings.HasPrefix(dsn, "postgres://app:") || !strings.Contains(dsn, "@db.internal:5432/decor?") {
		t.Fatalf("dsn = %s", dsn)
	}

	parsed, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if parsed.ConnConfig.Password != config.Password || parsed.ConnConfig.Database != "decor" {
		t.Errorf("password = %q database = %q", parsed.ConnConfig.Password, parsed.ConnConfig.Database)
	}
}
