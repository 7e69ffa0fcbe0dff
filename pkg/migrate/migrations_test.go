package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stockroomhq/stockroom-backend/pkg/migrate"
)

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"price numeric(12,2) NOT NULL CHECK (price >= 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}

	if strings.Contains(content, "warehouse_id") {
		t.Error("products table must not carry a warehouse reference")
	}
}

func TestInventoriesMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_inventories_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventories",
		"REFERENCES products (id) ON DELETE CASCADE",
		"quantity integer NOT NULL DEFAULT 0 CHECK (quantity >= 0)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_inventories_product_warehouse",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration file matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
