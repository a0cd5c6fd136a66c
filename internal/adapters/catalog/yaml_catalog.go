package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/SolaireOfAndor/Summit-sub004/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/listings.yaml
var embeddedCatalog []byte

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type catalogFile struct {
	Listings []domain.Listing `yaml:"listings"`
}

// YAMLCatalog - неизменяемый каталог в памяти, загруженный при старте.
// Безопасен для конкурентного чтения.
type YAMLCatalog struct {
	listings []domain.Listing
	bySlug   map[string]int
}

// NewEmbeddedCatalog загружает каталог, встроенный в бинарник.
func NewEmbeddedCatalog() (*YAMLCatalog, error) {
	return NewYAMLCatalog(bytes.NewReader(embeddedCatalog))
}

// NewFileCatalog загружает каталог из файла (CATALOG_PATH).
func NewFileCatalog(path string) (*YAMLCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to open %s: %w", path, err)
	}
	defer f.Close()
	return NewYAMLCatalog(f)
}

// NewYAMLCatalog читает и проверяет каталог: id и slug обязательны и уникальны,
// счетчики комнат неотрицательны.
func NewYAMLCatalog(r io.Reader) (*YAMLCatalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode yaml: %w", err)
	}

	c := &YAMLCatalog{
		listings: make([]domain.Listing, 0, len(file.Listings)),
		bySlug:   make(map[string]int, len(file.Listings)),
	}
	ids := make(map[string]struct{}, len(file.Listings))

	for i, l := range file.Listings {
		l.ID = strings.TrimSpace(l.ID)
		l.Slug = strings.TrimSpace(l.Slug)
		if l.ID == "" {
			return nil, fmt.Errorf("catalog: listing #%d has no id", i)
		}
		if !slugPattern.MatchString(l.Slug) {
			return nil, fmt.Errorf("catalog: listing %s has invalid slug %q", l.ID, l.Slug)
		}
		if _, dup := ids[l.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate listing id %s", l.ID)
		}
		if _, dup := c.bySlug[l.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate listing slug %s", l.Slug)
		}
		if l.Bedrooms < 0 || l.Bathrooms < 0 || l.AvailableBedrooms < 0 || l.AvailableBedrooms > l.Bedrooms {
			return nil, fmt.Errorf("catalog: listing %s has inconsistent room counts", l.ID)
		}
		if l.Images == nil {
			l.Images = []string{}
		}

		ids[l.ID] = struct{}{}
		c.bySlug[l.Slug] = len(c.listings)
		c.listings = append(c.listings, l)
	}

	return c, nil
}

// All возвращает копию каталога, изменения у вызывающего не видны другим запросам
func (c *YAMLCatalog) All(ctx context.Context) ([]domain.Listing, error) {
	out := make([]domain.Listing, len(c.listings))
	for i, l := range c.listings {
		out[i] = cloneListing(l)
	}
	return out, nil
}

func (c *YAMLCatalog) FindBySlug(ctx context.Context, slug string) (*domain.Listing, error) {
	i, ok := c.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	listing := cloneListing(c.listings[i])
	return &listing, nil
}

func cloneListing(l domain.Listing) domain.Listing {
	l.Categories = slices.Clone(l.Categories)
	l.Features = slices.Clone(l.Features)
	l.Images = slices.Clone(l.Images)
	return l
}

// Len - размер каталога
func (c *YAMLCatalog) Len() int { return len(c.listings) }
