package repository_test

import (
	"os"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS manufacturers (
  id BIGSERIAL PRIMARY KEY,
  name VARCHAR(255) NOT NULL,
  normalized_name VARCHAR(255) NOT NULL UNIQUE,
  category VARCHAR(16) NOT NULL,
  website TEXT,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CHECK (category IN ('CPU','GPU','Both'))
);
CREATE TABLE IF NOT EXISTS cpus (
  id BIGSERIAL PRIMARY KEY,
  model_name VARCHAR(255) NOT NULL,
  normalized_name VARCHAR(255) NOT NULL,
  manufacturer_id BIGINT NOT NULL REFERENCES manufacturers(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  UNIQUE (manufacturer_id, normalized_name)
);
CREATE TABLE IF NOT EXISTS gpus (
  id BIGSERIAL PRIMARY KEY,
  model_name VARCHAR(255) NOT NULL,
  normalized_name VARCHAR(255) NOT NULL,
  manufacturer_id BIGINT NOT NULL REFERENCES manufacturers(id),
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  UNIQUE (manufacturer_id, normalized_name)
);
CREATE TABLE IF NOT EXISTS power_supplies (
  id BIGSERIAL PRIMARY KEY,
  wattage INT NOT NULL UNIQUE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS devices (
  id UUID PRIMARY KEY,
  ram_size_mb INT NOT NULL,
  storage_size_gb INT NOT NULL,
  storage_type VARCHAR(8) NOT NULL,
  cpu_id BIGINT NOT NULL REFERENCES cpus(id),
  gpu_id BIGINT NOT NULL REFERENCES gpus(id),
  power_supply_id BIGINT NOT NULL REFERENCES power_supplies(id),
  weight_kg DOUBLE PRECISION NOT NULL,
  is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS device_usb_ports (
  id BIGSERIAL PRIMARY KEY,
  device_id UUID NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
  port_type VARCHAR(16) NOT NULL,
  count INT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS import_jobs (
  id UUID PRIMARY KEY,
  file_name TEXT NOT NULL,
  total_rows INT NOT NULL DEFAULT 0,
  success_count INT NOT NULL DEFAULT 0,
  failure_count INT NOT NULL DEFAULT 0,
  status VARCHAR(16) NOT NULL,
  error_log JSONB,
  failure_reason TEXT,
  created_by VARCHAR(255) NOT NULL DEFAULT '',
  started_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  completed_at TIMESTAMPTZ,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  CHECK (status IN ('Pending','Processing','Completed','Failed'))
);
`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}

	if err := db.Exec(schemaSQL).Error; err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	return db
}
