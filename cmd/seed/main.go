package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/siteproof/api/internal/config"
	"github.com/siteproof/api/internal/database"
	"github.com/siteproof/api/internal/dictionary"
	"github.com/siteproof/api/internal/logger"
	"github.com/siteproof/api/internal/model"
	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout of the industry dictionary seed file.
type SeedFile struct {
	Dictionaries []IndustrySeed `yaml:"dictionaries"`
}

type IndustrySeed struct {
	Slug  string   `yaml:"slug"`
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

func main() {
	filePath := flag.String("file", "data/industry_dictionaries.yaml", "Path to industry dictionary YAML file")
	only := flag.String("only", "", "Comma-separated slugs to seed (default all)")
	flag.Parse()

	cfg := config.Load()
	log := logger.New("seed", cfg.LogLevel)

	seeds, err := loadSeedFile(*filePath)
	if err != nil {
		log.Error("failed to load seed file", "path", *filePath, "error", err)
		os.Exit(1)
	}
	seeds = filterSeeds(seeds, *only)
	log.Info("loaded seed file", "path", *filePath, "dictionaries", len(seeds))

	db, err := database.Connect(cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	resolver := dictionary.NewResolver(db, dictionary.WithLogger(log.Named("dictionary")))
	if err := seed(context.Background(), resolver, seeds, log); err != nil {
		log.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

type industryUpserter interface {
	UpsertIndustryDictionary(ctx context.Context, slug, name string, words []string) (*model.IndustryDictionary, error)
}

func seed(ctx context.Context, resolver industryUpserter, seeds []IndustrySeed, log hclog.Logger) error {
	total := 0
	for _, s := range seeds {
		dict, err := resolver.UpsertIndustryDictionary(ctx, s.Slug, s.Name, s.Words)
		if err != nil {
			return err
		}
		total += len(dict.Words)
		log.Info("seeded industry dictionary", "slug", dict.Slug, "words", len(dict.Words))
	}
	log.Info("seeding complete", "dictionaries", len(seeds), "words", total)
	return nil
}

func loadSeedFile(path string) ([]IndustrySeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file SeedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	seen := make(map[string]bool)
	for i, d := range file.Dictionaries {
		slug := strings.ToLower(strings.TrimSpace(d.Slug))
		if slug == "" {
			return nil, fmt.Errorf("dictionary %d has no slug", i)
		}
		if seen[slug] {
			return nil, fmt.Errorf("duplicate slug %q", slug)
		}
		seen[slug] = true
		if d.Name == "" {
			file.Dictionaries[i].Name = slug
		}
	}
	return file.Dictionaries, nil
}

func filterSeeds(seeds []IndustrySeed, only string) []IndustrySeed {
	if strings.TrimSpace(only) == "" {
		return seeds
	}
	want := make(map[string]bool)
	for _, slug := range strings.Split(only, ",") {
		want[strings.ToLower(strings.TrimSpace(slug))] = true
	}

	var out []IndustrySeed
	for _, s := range seeds {
		if want[strings.ToLower(strings.TrimSpace(s.Slug))] {
			out = append(out, s)
		}
	}
	return out
}
