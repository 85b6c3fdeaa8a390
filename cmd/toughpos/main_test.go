package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/toughpos/internal/domain"
	"github.com/talkincode/toughpos/internal/storage"
)

func writeConfig(t *testing.T, dir, dbPath string) string {
	t.Helper()
	cfg := fmt.Sprintf(`system:
  location: Local
  workdir: %s
  node_id: 1
storage:
  type: bolt
  path: %s
logger:
  mode: development
  file_enable: false
`, dir, dbPath)
	path := filepath.Join(dir, "toughpos.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o644))
	return path
}

func seedCatalog(t *testing.T, dbPath string) {
	t.Helper()
	b, err := storage.OpenBolt(dbPath)
	require.NoError(t, err)
	defer b.Close()
	data, err := storage.Marshal([]domain.Product{{
		ID:           "prod-custom",
		Name:         "Tripod",
		Barcode:      "777000",
		Cost:         decimal.NewFromInt(20),
		Price:        decimal.NewFromInt(35),
		MinimumPrice: decimal.NewFromInt(30),
		Stock:        4,
		PurchaseDate: "2026-10-01",
	}})
	require.NoError(t, err)
	require.NoError(t, b.Save(storage.KeyProducts, data))
}

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return newCLIApp().Run(append([]string{"toughpos"}, args...))
}

func exportedLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestExportThenReset(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "pos.db")
	cfg := writeConfig(t, dir, dbPath)
	seedCatalog(t, dbPath)

	out := filepath.Join(dir, "out", "products.csv")
	require.NoError(t, runCLI(t, "-c", cfg, "export", "--kind", "products", "--format", "csv", "--out", out))
	lines := exportedLines(t, out)
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,name,barcode"))
	assert.True(t, strings.HasPrefix(lines[1], "prod-custom,Tripod,777000"))

	require.NoError(t, runCLI(t, "-c", cfg, "reset"))

	b, err := storage.OpenBolt(dbPath)
	require.NoError(t, err)
	_, err = b.Load(storage.KeyProducts)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	require.NoError(t, b.Close())

	require.NoError(t, runCLI(t, "-c", cfg, "export", "--kind", "products", "--format", "csv", "--out", out))
	lines = exportedLines(t, out)
	assert.Greater(t, len(lines), 2)
	assert.NotContains(t, strings.Join(lines, "\n"), "prod-custom")
}

func TestExportXLSXDefaultsToSales(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, filepath.Join(dir, "pos.db"))

	out := filepath.Join(dir, "sales.xlsx")
	require.NoError(t, runCLI(t, "-c", cfg, "export", "--format", "xlsx", "--out", out))
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportRejectsUnknownKind(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, filepath.Join(dir, "pos.db"))

	out := filepath.Join(dir, "x.csv")
	err := runCLI(t, "-c", cfg, "export", "--kind", "receivables", "--out", out)
	assert.Error(t, err)
	assert.NoFileExists(t, out)
}
