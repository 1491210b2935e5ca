package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/category"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Sources = []Source{
		{Format: "midata", Dir: "/abs/midata", Extension: "csv", Delimiter: ";", AccountName: "current"},
	}

	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Currency, got.Currency)
	assert.Equal(t, cfg.Period, got.Period)
	assert.Equal(t, cfg.Sources, got.Sources)
	assert.Equal(t, cfg.Categories, got.Categories)
	assert.Equal(t, cfg.Ignore, got.Ignore)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "£", cfg.Currency)
	assert.Equal(t, "weekly", cfg.Period.Length)
	assert.Equal(t, "monday", cfg.Period.WeekStart)
	require.Len(t, cfg.Sources, 4)
	assert.Equal(t, "ISO-8859-10", cfg.Sources[1].Encoding)
	assert.Equal(t, "groceries", cfg.Categories[0].Label)
	assert.Equal(t, []string{"transfer"}, cfg.Ignore)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_CategoryOrderPreserved(t *testing.T) {
	data := `
currency: "$"
categories:
  zebra: [zoo]
  apple: [orchard, "FRUIT"]
  mango: market
  empty:
sources: []
`
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Categories{
		{Label: "zebra", Keywords: []string{"zoo"}},
		{Label: "apple", Keywords: []string{"orchard", "FRUIT"}},
		{Label: "mango", Keywords: []string{"market"}},
		{Label: "empty"},
	}, cfg.Categories)

	assert.Equal(t, "apple", cfg.Mapper().Categorize("fruit stall"))
	assert.Equal(t, category.Uncategorised, cfg.Mapper().Categorize("rent"))
}

func TestLoad_DuplicateCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  a: [x]\n  a: [y]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_CategoriesMustBeMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [a, b]\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapping")
}

func TestLoad_ResolvesRelativeDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tally.yaml")
	cfg := Default()
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "statements", "natwest"), got.Sources[0].Dir)
}

func TestLoad_CurrencyFromEnv(t *testing.T) {
	t.Setenv(EnvCurrency, "€")
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default()))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "€", got.Currency)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "length: weekly")
	assert.Contains(t, contents, "format: santander")
	assert.Contains(t, contents, "groceries: [tesco, sainsbury, lidl]")
	assert.Contains(t, contents, "account_from_filename: true")
}

func TestDelimiterRune(t *testing.T) {
	r, err := Source{Delimiter: ";"}.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	r, err = Source{}.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, rune(0), r)

	_, err = Source{Delimiter: "||"}.DelimiterRune()
	assert.Error(t, err)
}

func TestLoad_DefaultsCurrency(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tally.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sources: []\nperiod:\n  length: monthly\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "£", cfg.Currency)
	assert.Equal(t, "monthly", cfg.Period.Length)
	assert.Equal(t, "monday", cfg.Period.WeekStart)
}

func TestLoad_ReservedCategory(t *testing.T) {
	for _, label := range []string{"ignored", "Uncategorised"} {
		path := filepath.Join(t.TempDir(), "tally.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories:\n  "+label+": [x]\n"), 0o644))

		_, err := Load(path)
		require.Error(t, err, label)
		assert.Contains(t, err.Error(), "reserved")
	}
}
