// Package schema holds the canonical-catalog configuration: the identifier
// column, the alias map from canonical field to accepted source column names,
// and the filter-extraction rules. All of it ships with compiled-in defaults
// and can be overridden from the YAML config file.
package schema

import (
	"errors"
	"strings"
)

// Alias resolution scopes. Dataset scope binds one source column per
// canonical field for the whole merged dataset; row scope re-resolves the
// alias list against each row's own source table.
const (
	ScopeDataset = "dataset"
	ScopeRow     = "row"
)

var (
	// ErrNoFields is returned when the alias map has no entries
	ErrNoFields = errors.New("schema has no canonical fields")
	// ErrNoIdentifier is returned when the identifier column name is blank
	ErrNoIdentifier = errors.New("schema identifier column is empty")
	// ErrInvalidScope is returned for an unknown alias resolution scope
	ErrInvalidScope = errors.New("alias scope must be 'dataset' or 'row'")
)

// FieldMapping maps one canonical field to its accepted source column names,
// in priority order. Within one column universe at most the first matching
// alias is used.
type FieldMapping struct {
	Field   string   `yaml:"field"`
	Aliases []string `yaml:"aliases"`
}

// FilterRules configures the derived "active filters" field.
type FilterRules struct {
	// Output is the name of the derived canonical field.
	Output string `yaml:"output"`
	// Direct lists free-text filter columns read verbatim, in order.
	Direct []string `yaml:"direct"`
	// Marker is the case-insensitive substring identifying boolean-flag
	// filter columns.
	Marker string `yaml:"marker"`
	// StripPrefix is removed from a boolean-flag column name to obtain the
	// human-readable filter label.
	StripPrefix string `yaml:"stripPrefix"`
	// Affirmatives are the values (after trim and lowercase) treated as
	// "flag set".
	Affirmatives []string `yaml:"affirmatives"`
}

// Config is the full reconciliation schema.
type Config struct {
	// Identifier is the product key column, copied verbatim and never
	// alias-resolved.
	Identifier string `yaml:"identifier"`
	// AliasScope selects dataset-wide or per-row alias resolution.
	AliasScope string `yaml:"aliasScope" default:"dataset"`
	// SortBy is the canonical field the final catalog is ordered by.
	SortBy string `yaml:"sortBy"`
	// Fields is the ordered alias map; its order is the output column order.
	Fields  []FieldMapping `yaml:"fields"`
	Filters FilterRules    `yaml:"filters"`
}

// SetDefaults fills any unset part of the schema with the built-in catalog
// configuration.
func (c *Config) SetDefaults() {
	if c.Identifier == "" {
		c.Identifier = "Артикул"
	}
	if c.AliasScope == "" {
		c.AliasScope = ScopeDataset
	}
	if c.SortBy == "" {
		c.SortBy = "Производитель"
	}
	if len(c.Fields) == 0 {
		c.Fields = defaultFields()
	}
	c.Filters.SetDefaults()
}

// SetDefaults fills unset filter rules with the built-in ones.
func (f *FilterRules) SetDefaults() {
	if f.Output == "" {
		f.Output = "Фильтры тонкой очистки воздуха"
	}
	if len(f.Direct) == 0 {
		f.Direct = []string{
			"Дополнительные фильтры тонкой очистки в комплекте",
			"Фильтра",
			"Воздушный фильтр",
		}
	}
	if f.Marker == "" {
		f.Marker = "фильтр тонкой очистки"
	}
	if f.StripPrefix == "" {
		f.StripPrefix = "Дополнительный фильтр тонкой очистки "
	}
	if len(f.Affirmatives) == 0 {
		f.Affirmatives = []string{"да", "+", "yes", "true", "1", "есть"}
	}
}

// Validate checks the schema for structural problems.
func (c *Config) Validate() error {
	if c.Identifier == "" {
		return ErrNoIdentifier
	}
	if len(c.Fields) == 0 {
		return ErrNoFields
	}
	if c.AliasScope != ScopeDataset && c.AliasScope != ScopeRow {
		return ErrInvalidScope
	}
	return nil
}

// FieldNames returns the canonical field names in mapping order, without the
// identifier or the derived filters field.
func (c *Config) FieldNames() []string {
	names := make([]string, 0, len(c.Fields))
	for _, m := range c.Fields {
		names = append(names, m.Field)
	}
	return names
}

// OutputColumns returns the full output header: identifier, mapped fields in
// mapping order, then the derived filters field.
func (c *Config) OutputColumns() []string {
	cols := make([]string, 0, len(c.Fields)+2)
	cols = append(cols, c.Identifier)
	cols = append(cols, c.FieldNames()...)
	cols = append(cols, c.Filters.Output)
	return cols
}

// Affirmative reports whether a raw cell value counts as "flag set".
func (f *FilterRules) Affirmative(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, yes := range f.Affirmatives {
		if v == yes {
			return true
		}
	}
	return false
}

func defaultFields() []FieldMapping {
	return []FieldMapping{
		{
			Field:   "Производитель",
			Aliases: []string{"Бренд", "Производитель", "Заводская маркировка"},
		},
		{
			Field: "Цена",
			Aliases: []string{
				"Цена", "Розничная цена", "Цена со скидкой",
				"Стоимость", "Price", "РРЦ",
			},
		},
		{
			Field: "Мощность в режиме охлаждения",
			Aliases: []string{
				"Холодопроизводительность (кВт)",
				"Номинальная холодопроизводительность, кВт",
				"Номинальная холодопроизводительность",
				"Охлаждение (кВт)",
				"Произв. холод, кВт",
				"Производительность холод , кВт",
				"Холодопроизводительность",
				"Охлаждение (Вт)",
			},
		},
		{
			Field:   "Тип хладагента",
			Aliases: []string{"Тип хладагента", "Марка фреона"},
		},
		{
			Field:   "Цвет",
			Aliases: []string{"Цвет внутреннего блока", "Цвет прибора", "Цвет"},
		},
		{
			Field: "Класс энергопотребления",
			Aliases: []string{
				"Класс энергопотребления",
				"Класс энергоэффективности (охлаждение)",
				"Класс энергоэффективности EER (охлаждение)",
				"Класс энергетической эффективности",
			},
		},
		{
			Field: "Инвертор/Тип компрессора",
			Aliases: []string{
				"Инверторная технология", "Тип компрессора", "Инвертор",
				"Инверторный компрессор", "Тип управления компрессором",
			},
		},
		{
			Field: "Основные режимы (режим работы)",
			Aliases: []string{
				"Режим работы", "Основные режимы (режим работы)", "Режимы работы",
			},
		},
		{
			Field: "Уровень шума",
			Aliases: []string{
				"Уровень шума внутреннего блока, дБ(А)",
				"Уровень шума внутреннего блока",
				"Уровень звукового давления дБ(А)",
				"Мин. уровень шума , дБ(А)",
			},
		},
		{
			Field: "Максимальная длина коммуникаций",
			Aliases: []string{
				"Максимальная длина трассы",
				"Max.длина магистрали , м",
				"Длина трассы, м",
				"Максимальная длина труб, м",
			},
		},
		{
			Field:   "Модель",
			Aliases: []string{"Название", "Модель", "Модель внутреннего блока"},
		},
		{
			Field:   "Изображение",
			Aliases: []string{"Изображения", "Файлы"},
		},
	}
}
