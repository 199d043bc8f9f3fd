package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSetDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	assert.Equal(t, "Артикул", cfg.Identifier)
	assert.Equal(t, ScopeDataset, cfg.AliasScope)
	require.NotEmpty(t, cfg.Fields)
	assert.Equal(t, "Производитель", cfg.Fields[0].Field)
	assert.Equal(t, "Фильтры тонкой очистки воздуха", cfg.Filters.Output)
	assert.Contains(t, cfg.Filters.Affirmatives, "да")
	require.NoError(t, cfg.Validate())
}

func TestSetDefaultsKeepsOverrides(t *testing.T) {
	cfg := &Config{
		Identifier: "SKU",
		Fields:     []FieldMapping{{Field: "Brand", Aliases: []string{"Manufacturer"}}},
	}
	cfg.SetDefaults()

	assert.Equal(t, "SKU", cfg.Identifier)
	require.Len(t, cfg.Fields, 1)
	assert.Equal(t, "Brand", cfg.Fields[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "defaults are valid",
			mutate:  func(_ *Config) {},
			wantErr: nil,
		},
		{
			name:    "empty identifier",
			mutate:  func(c *Config) { c.Identifier = "" },
			wantErr: ErrNoIdentifier,
		},
		{
			name:    "no fields",
			mutate:  func(c *Config) { c.Fields = nil },
			wantErr: ErrNoFields,
		},
		{
			name:    "bad alias scope",
			mutate:  func(c *Config) { c.AliasScope = "global" },
			wantErr: ErrInvalidScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.SetDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOutputColumns(t *testing.T) {
	cfg := &Config{}
	cfg.SetDefaults()

	cols := cfg.OutputColumns()
	require.Len(t, cols, len(cfg.Fields)+2)
	assert.Equal(t, "Артикул", cols[0])
	assert.Equal(t, "Производитель", cols[1])
	assert.Equal(t, "Фильтры тонкой очистки воздуха", cols[len(cols)-1])
}

func TestAffirmative(t *testing.T) {
	var rules FilterRules
	rules.SetDefaults()

	for _, v := range []string{"да", " Да ", "ДА", "+", "yes", "TRUE", "1", "есть"} {
		assert.True(t, rules.Affirmative(v), "value %q", v)
	}
	for _, v := range []string{"", "нет", "no", "0", "-", "nan"} {
		assert.False(t, rules.Affirmative(v), "value %q", v)
	}
}

func TestYAMLOverride(t *testing.T) {
	raw := `
identifier: SKU
aliasScope: row
fields:
  - field: Brand
    aliases: [Производитель, Бренд]
filters:
  output: Filters
  direct: [Фильтра]
  marker: фильтр
  stripPrefix: "Фильтр "
  affirmatives: [ja]
`
	cfg := &Config{}
	require.NoError(t, yaml.Unmarshal([]byte(raw), cfg))
	cfg.SetDefaults()

	assert.Equal(t, "SKU", cfg.Identifier)
	assert.Equal(t, ScopeRow, cfg.AliasScope)
	assert.Equal(t, []string{"SKU", "Brand", "Filters"}, cfg.OutputColumns())
	assert.True(t, cfg.Filters.Affirmative("JA"))
	assert.False(t, cfg.Filters.Affirmative("да"))
}
