package database

import (
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-manager/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "hotel",
		DBPass: "s3cret",
		DBHost: "db.internal",
		DBPort: "3307",
		DBName: "hotel_manager",
	}

	parsed, err := mysql.ParseDSN(DSN(cfg))
	if err != nil {
		t.Fatalf("ParseDSN() error = %v", err)
	}
	if parsed.User != "hotel" || parsed.Passwd != "s3cret" {
		t.Errorf("credentials = %q/%q", parsed.User, parsed.Passwd)
	}
	if parsed.Addr != "db.internal:3307" {
		t.Errorf("addr = %q", parsed.Addr)
	}
	if parsed.DBName != "hotel_manager" {
		t.Errorf("db name = %q", parsed.DBName)
	}
	if !parsed.ParseTime {
		t.Error("parseTime not set")
	}
	if !parsed.ClientFoundRows {
		t.Error("clientFoundRows not set")
	}
	if parsed.Loc != time.UTC {
		t.Errorf("loc = %v, want UTC", parsed.Loc)
	}
	if parsed.Collation != "utf8mb4_unicode_ci" {
		t.Errorf("collation = %q", parsed.Collation)
	}
}

func TestDSNWithoutPassword(t *testing.T) {
	parsed, err := mysql.ParseDSN(DSN(config.Config{DBUser: "root", DBHost: "localhost", DBPort: "3306", DBName: "hotel"}))
	if err != nil {
		t.Fatalf("ParseDSN() error = %v", err)
	}
	if parsed.User != "root" || parsed.Passwd != "" {
		t.Errorf("credentials = %q/%q", parsed.User, parsed.Passwd)
	}
}
