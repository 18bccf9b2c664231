package pattern

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type tableFile struct {
	Patterns []Entry `yaml:"patterns"`
}

// ParseTable reads a YAML pattern file:
//
//	patterns:
//	  - shape: "11111"
//	    score: 50000
func ParseTable(r io.Reader) (*Table, error) {
	var tf tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyTable
		}
		return nil, fmt.Errorf("parsing pattern file: %w", err)
	}
	return NewTable(tf.Patterns)
}

// LoadTable reads the pattern file at path. An empty path gives the
// default table.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Str("path", path).Int("patterns", len(t.entries)).Msg("loaded-pattern-table")
	return t, nil
}

// WriteTable writes t in the format ParseTable reads.
func WriteTable(w io.Writer, t *Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tableFile{Patterns: t.Entries()}); err != nil {
		return err
	}
	return enc.Close()
}
