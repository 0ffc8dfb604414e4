package directory_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mentionkit/pkg/directory"
)

const seedYAML = `
tenants:
  - id: acme
    entities:
      - type: person
        id: 4c0a9e7a-2f40-4c64-9b7a-1f447f1b7ef8
        label: Dwight Schrute
      - type: meeting
        id: 22222222-2222-4222-8222-222222222222
        label: Conference Room All Hands
  - id: empty
`

func TestParseSeed(t *testing.T) {
	t.Parallel()

	seed, err := directory.ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)
	require.Len(t, seed.Tenants, 2)

	entities, err := seed.Entities()
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.Equal(t, "contact", entities[0].Type)
	assert.Equal(t, dwightID, entities[0].ID)
	assert.Equal(t, "acme", entities[0].TenantID)

	ctx := context.Background()
	store, err := directory.NewMemoryStore()
	require.NoError(t, err)
	require.NoError(t, seed.Apply(ctx, store))

	ok, err := store.HasTenant(ctx, "empty")
	require.NoError(t, err)
	assert.True(t, ok)

	e, err := store.Lookup(ctx, "acme", "meeting", meetingID)
	require.NoError(t, err)
	assert.Equal(t, "Conference Room All Hands", e.Label)
}

func TestParseSeed_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"malformed yaml": "tenants: [",
		"unknown field":  "tenants:\n  - id: a\n    owner: x\n",
		"missing tenant": "tenants:\n  - entities: []\n",
		"invalid id":     "tenants:\n  - id: a\n    entities:\n      - {type: contact, id: nope, label: x}\n",
		"missing type":   "tenants:\n  - id: a\n    entities:\n      - {id: 4c0a9e7a-2f40-4c64-9b7a-1f447f1b7ef8, label: x}\n",
		"nil identifier": "tenants:\n  - id: a\n    entities:\n      - {type: contact, id: 00000000-0000-0000-0000-000000000000}\n",
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := directory.ParseSeed(strings.NewReader(body))
			assert.ErrorIs(t, err, directory.ErrInvalidSeed)
		})
	}
}

func TestParseSeed_Empty(t *testing.T) {
	t.Parallel()

	seed, err := directory.ParseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seed.Tenants)
}

func TestLoadSeed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o600))

	seed, err := directory.LoadSeed(path)
	require.NoError(t, err)
	assert.Len(t, seed.Tenants, 2)

	_, err = directory.LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, directory.ErrInvalidSeed)
}
