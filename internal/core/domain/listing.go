package domain

import "errors"

// ErrListingNotFound возвращается, когда объявления с таким slug нет в каталоге.
var ErrListingNotFound = errors.New("listing not found")

// Feature - пара "метка/значение" у объявления (например, "Building Type" / "Villa").
type Feature struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Listing - одно объявление о жилье в каталоге.
// Каталог неизменяем на протяжении жизни процесса.
type Listing struct {
	ID          string `yaml:"id"`
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// Location в формате "City, Region"
	Location string `yaml:"location"`

	Categories []string  `yaml:"categories"`
	Features   []Feature `yaml:"features"`

	Bedrooms          int `yaml:"bedrooms"`
	Bathrooms         int `yaml:"bathrooms"`
	AvailableBedrooms int `yaml:"availableBedrooms"`

	Images []string `yaml:"images"`
}

// FeatureValue возвращает значение признака по метке без учета регистра.
func (l Listing) FeatureValue(label string) (string, bool) {
	want := normalizeTag(label)
	for _, f := range l.Features {
		if normalizeTag(f.Label) == want {
			return f.Value, true
		}
	}
	return "", false
}
