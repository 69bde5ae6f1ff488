package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeedFile(t *testing.T) {
	path := writeSeed(t, `
dictionaries:
  - slug: SaaS
    name: Software
    words: [onboarding, webhook]
  - slug: legal
    words: [estoppel]
`)
	seeds, err := loadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, seeds, 2)
	assert.Equal(t, []string{"onboarding", "webhook"}, seeds[0].Words)
	assert.Equal(t, "legal", seeds[1].Name)
}

func TestLoadSeedFileRejectsBadInput(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "missing slug", content: "dictionaries:\n  - name: Nothing\n"},
		{name: "duplicate slug", content: "dictionaries:\n  - slug: a\n  - slug: A\n"},
		{name: "not yaml", content: "dictionaries: [unclosed"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadSeedFile(writeSeed(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestBundledSeedFileParses(t *testing.T) {
	seeds, err := loadSeedFile(filepath.Join("..", "..", "data", "industry_dictionaries.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, seeds)
}

func TestFilterSeeds(t *testing.T) {
	seeds := []IndustrySeed{{Slug: "saas"}, {Slug: "legal"}, {Slug: "medical"}}
	assert.Len(t, filterSeeds(seeds, ""), 3)
	got := filterSeeds(seeds, "Legal, medical")
	require.Len(t, got, 2)
	assert.Equal(t, "legal", got[0].Slug)
}

type recordingUpserter struct {
	slugs []string
}

func (r *recordingUpserter) UpsertIndustryDictionary(_ context.Context, slug, name string, words []string) (*model.IndustryDictionary, error) {
	r.slugs = append(r.slugs, slug)
	return &model.IndustryDictionary{Slug: slug, Name: name, Words: words}, nil
}

func TestSeed(t *testing.T) {
	up := &recordingUpserter{}
	err := seed(context.Background(), up, []IndustrySeed{{Slug: "saas", Words: []string{"a"}}, {Slug: "legal"}}, hclog.NewNullLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{"saas", "legal"}, up.slugs)
}
