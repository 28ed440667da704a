package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a YAML store.
type file struct {
	// Objects are the tagged database objects
	Objects []fileObject `yaml:"objects"`

	// DNA is inline sequence by name, for small stores
	DNA map[string]string `yaml:"dna"`
}

type fileObject struct {
	ID   string                     `yaml:"id"`
	Tags map[string][][]interface{} `yaml:"tags"`
}

// LoadYAML reads a YAML store from path.
func LoadYAML(path string) (*Mem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read store file %s: %w", path, err)
	}

	m, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return m, nil
}

// ParseYAML parses YAML store data.
func ParseYAML(data []byte) (*Mem, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse store YAML: %w", err)
	}

	m := NewMem()
	for _, o := range f.Objects {
		k, err := ParseKey(o.ID)
		if err != nil {
			return nil, err
		}
		if _, seen := m.objects[k]; seen {
			return nil, fmt.Errorf("object %s is declared twice", k)
		}
		m.objects[k] = &Object{Key: k, Tags: make(map[string][]Row)}

		for tag, rows := range o.Tags {
			parsed := make([]Row, 0, len(rows))
			for _, r := range rows {
				row, err := parseRow(r)
				if err != nil {
					return nil, fmt.Errorf("object %s, tag %s: %w", k, tag, err)
				}
				parsed = append(parsed, row)
			}
			m.objects[k].Tags[tag] = parsed
		}
	}

	for name, seq := range f.DNA {
		m.AddDNA(name, []byte(seq))
	}
	return m, nil
}

// parseRow keeps ints and strings and rejects anything else.
func parseRow(values []interface{}) (Row, error) {
	row := make(Row, 0, len(values))
	for _, v := range values {
		switch t := v.(type) {
		case int:
			row = append(row, t)
		case string:
			row = append(row, t)
		default:
			return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
		}
	}
	return row, nil
}
