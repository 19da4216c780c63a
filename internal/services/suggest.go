package services

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/medianoche-studio/archivo-anomalo-backend/internal/core/normalize"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/envutil"
	"github.com/medianoche-studio/archivo-anomalo-backend/internal/platform/logger"
)

// SuggestService serves the curated key-element tag catalog. The catalog is a
// YAML file grouped by genre, loaded once at startup.
type SuggestService interface {
	Suggestions(genre string) []string
	Genres() []string
}

type suggestService struct {
	log     *logger.Logger
	byGenre map[string][]string
	common  []string
}

type suggestCatalog struct {
	Comunes []string            `yaml:"comunes"`
	Generos map[string][]string `yaml:"generos"`
}

func NewSuggestService(baseLog *logger.Logger) (SuggestService, error) {
	serviceLog := baseLog.With("service", "SuggestService")
	path := envutil.String("KEY_ELEMENT_CATALOG", "configs/key_elements.yaml")

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read key element catalog %q: %w", path, err)
	}
	var catalog suggestCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse key element catalog %q: %w", path, err)
	}

	byGenre := make(map[string][]string, len(catalog.Generos))
	for genre, tags := range catalog.Generos {
		byGenre[strings.ToLower(strings.TrimSpace(genre))] = normalize.StringList(tags)
	}
	serviceLog.Info("key element catalog loaded", "path", path, "generos", len(byGenre))

	return &suggestService{
		log:     serviceLog,
		byGenre: byGenre,
		common:  normalize.StringList(catalog.Comunes),
	}, nil
}

// Suggestions returns the common tags plus the genre-specific ones,
// deduplicated case-insensitively.
func (s *suggestService) Suggestions(genre string) []string {
	out := make([]string, 0, len(s.common))
	seen := map[string]bool{}
	add := func(tags []string) {
		for _, t := range tags {
			key := strings.ToLower(t)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, t)
		}
	}
	add(s.common)
	add(s.byGenre[strings.ToLower(strings.TrimSpace(genre))])
	return out
}

func (s *suggestService) Genres() []string {
	out := make([]string, 0, len(s.byGenre))
	for g := range s.byGenre {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
