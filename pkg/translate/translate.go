// Package translate provides locale tables for relation categories and
// entity display names.
//
// Tables are TOML files, one per locale:
//
//	[relations]
//	craft = "fertigen"
//	trade = "handeln"
//
//	[entities]
//	"Steel Plate" = "Stahlplatte"
//
// Lookups are pass-through: a missing key (or a nil table) returns the input
// unchanged, so untranslated datasets render without special-casing.
package translate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/craftlens/craftlens/pkg/errors"
)

// Table holds the translations for one locale.
type Table struct {
	Relations map[string]string `toml:"relations"`
	Entities  map[string]string `toml:"entities"`
}

// Relation translates a relation category key.
func (t *Table) Relation(key string) string {
	if t == nil {
		return key
	}
	if v, ok := t.Relations[key]; ok {
		return v
	}
	return key
}

// Entity translates an entity display name or tier label.
func (t *Table) Entity(name string) string {
	if t == nil {
		return name
	}
	if v, ok := t.Entities[name]; ok {
		return v
	}
	return name
}

// Load reads one locale table from a TOML file.
func Load(path string) (*Table, error) {
	var t Table
	if _, err := toml.DecodeFile(path, &t); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "locale file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse locale file %s", path)
	}
	return &t, nil
}

// LoadDir reads every *.toml file in dir, keyed by locale (the filename
// without extension). A missing directory yields an empty map, not an error.
func LoadDir(dir string) (map[string]*Table, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]*Table{}, nil
	}
	if err != nil {
		return nil, err
	}

	tables := make(map[string]*Table)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		locale := strings.TrimSuffix(e.Name(), ".toml")
		t, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		tables[locale] = t
	}
	return tables, nil
}
