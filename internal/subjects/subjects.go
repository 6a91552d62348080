// Package subjects holds the static subject catalog. The catalog is
// loaded once at startup, either from the embedded default or from an
// operator-provided YAML file, and never changes afterwards.
package subjects

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abdulhadi/ustaad/internal/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type Catalog struct {
	subjects []domain.Subject
	byID     map[domain.SubjectID]*domain.Subject
}

type catalogFile struct {
	Subjects []domain.Subject `yaml:"subjects"`
}

// Load parses a catalog from YAML.
func Load(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing subject catalog: %w", err)
	}
	if len(f.Subjects) == 0 {
		return nil, fmt.Errorf("subject catalog is empty")
	}

	c := &Catalog{
		subjects: f.Subjects,
		byID:     make(map[domain.SubjectID]*domain.Subject, len(f.Subjects)),
	}
	for i := range c.subjects {
		s := &c.subjects[i]
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("subject %d: id and name are required", i)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate subject id %q", s.ID)
		}
		c.byID[s.ID] = s
	}
	return c, nil
}

// LoadDefault returns the embedded catalog, or the file at path when
// path is non-empty.
func LoadDefault(path string) (*Catalog, error) {
	if path == "" {
		return Load(embeddedCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading subject catalog: %w", err)
	}
	return Load(data)
}

// All returns subjects in catalog order. Callers must not mutate them.
func (c *Catalog) All() []domain.Subject {
	return c.subjects
}

func (c *Catalog) Lookup(id domain.SubjectID) (*domain.Subject, bool) {
	s, ok := c.byID[id]
	return s, ok
}

func (c *Catalog) Len() int {
	return len(c.subjects)
}
