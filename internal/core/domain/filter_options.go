package domain

// Метки признаков, из которых собираются варианты фильтров.
const (
	FeatureLabelBuildingType   = "Building Type"
	FeatureLabelDesignCategory = "Design Category"
)

// FilterOptions - варианты значений для контролов фильтра.
type FilterOptions struct {
	Locations        []string
	Categories       []string
	BuildingTypes    []string
	DesignCategories []string
	BedroomsMin      int
	BedroomsMax      int
	Total            int
}

// BuildFilterOptions собирает уникальные значения по каждой оси в порядке
// первого появления в каталоге.
func BuildFilterOptions(catalog []Listing) FilterOptions {
	opts := FilterOptions{Total: len(catalog)}

	locations := newOrderedSet()
	categories := newOrderedSet()
	buildingTypes := newOrderedSet()
	designCategories := newOrderedSet()

	for i, l := range catalog {
		locations.add(l.Location)
		for _, c := range l.Categories {
			categories.add(c)
		}
		if v, ok := l.FeatureValue(FeatureLabelBuildingType); ok {
			buildingTypes.add(v)
		}
		if v, ok := l.FeatureValue(FeatureLabelDesignCategory); ok {
			designCategories.add(v)
		}

		if i == 0 || l.Bedrooms < opts.BedroomsMin {
			opts.BedroomsMin = l.Bedrooms
		}
		if l.Bedrooms > opts.BedroomsMax {
			opts.BedroomsMax = l.Bedrooms
		}
	}

	opts.Locations = locations.items
	opts.Categories = categories.items
	opts.BuildingTypes = buildingTypes.items
	opts.DesignCategories = designCategories.items
	return opts
}

// orderedSet дедуплицирует значения без учета регистра, сохраняя первое написание.
type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{}), items: []string{}}
}

func (s *orderedSet) add(v string) {
	key := normalizeTag(v)
	if key == "" {
		return
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, v)
}
