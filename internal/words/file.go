package words

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a catalog file. ".yaml"/".yml" files are parsed as YAML,
// everything else as CSV.
func LoadFile(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(f)
	default:
		return ParseCSV(f)
	}
}

// ParseCSV reads `topic,word` rows. Lines starting with '#' are comments and
// an optional `tema,palabra` (or `topic,word`) header row is skipped.
func ParseCSV(r io.Reader) (*Memory, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	m := NewMemory()
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse catalog csv: %w", err)
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		if err := m.AddWord(context.Background(), rec[0], rec[1]); err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("parse catalog csv line %d: %w", line, err)
		}
	}
	return m, nil
}

func isHeader(rec []string) bool {
	t, w := strings.ToLower(strings.TrimSpace(rec[0])), strings.ToLower(strings.TrimSpace(rec[1]))
	return (t == "tema" && w == "palabra") || (t == "topic" && w == "word")
}

type yamlCatalog struct {
	Topics []struct {
		Name  string   `yaml:"name"`
		Words []string `yaml:"words"`
	} `yaml:"topics"`
}

// ParseYAML reads a catalog of the form:
//
//	topics:
//	  - name: Frutas
//	    words: [manzana, piña]
func ParseYAML(r io.Reader) (*Memory, error) {
	var doc yamlCatalog
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	m := NewMemory()
	for _, t := range doc.Topics {
		for _, w := range t.Words {
			if err := m.AddWord(context.Background(), t.Name, w); err != nil {
				return nil, fmt.Errorf("parse catalog yaml topic %q: %w", t.Name, err)
			}
		}
	}
	return m, nil
}
