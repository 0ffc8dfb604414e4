package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Seed is a YAML tenant dataset:
//
//	tenants:
//	  - id: demo
//	    entities:
//	      - type: contact
//	        id: 4c0a9e7a-2f40-4c64-9b7a-1f447f1b7ef8
//	        label: Dwight Schrute
type Seed struct {
	Tenants []SeedTenant `yaml:"tenants"`
}

// SeedTenant lists the entities of one tenant.
type SeedTenant struct {
	ID       string       `yaml:"id"`
	Entities []SeedEntity `yaml:"entities"`
}

// SeedEntity is one entity of a SeedTenant.
type SeedEntity struct {
	Type  string `yaml:"type"`
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// LoadSeed reads and parses the seed file at path.
func LoadSeed(path string) (*Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrInvalidSeed, err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes a seed and checks every entry.
func ParseSeed(r io.Reader) (*Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrInvalidSeed, err)
	}
	if _, err := seed.Entities(); err != nil {
		return nil, err
	}
	return &seed, nil
}

// Entities flattens the seed in file order.
func (s *Seed) Entities() ([]Entity, error) {
	var out []Entity
	for ti, t := range s.Tenants {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: tenant %d has no id", ErrInvalidSeed, ti)
		}
		for ei, se := range t.Entities {
			id, err := uuid.Parse(se.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: tenant %q entity %d: invalid id", ErrInvalidSeed, t.ID, ei)
			}
			e, err := normalizeEntity(Entity{TenantID: t.ID, Type: se.Type, ID: id, Label: se.Label})
			if err != nil {
				return nil, fmt.Errorf("%w: tenant %q entity %d: %w", ErrInvalidSeed, t.ID, ei, err)
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// Apply registers every tenant and entity of the seed with w.
func (s *Seed) Apply(ctx context.Context, w Writer) error {
	entities, err := s.Entities()
	if err != nil {
		return err
	}
	for _, t := range s.Tenants {
		if err := w.AddTenant(ctx, t.ID); err != nil {
			return err
		}
	}
	return w.Put(ctx, entities...)
}
