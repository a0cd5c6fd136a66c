package domain

import (
	"sort"
	"strings"
)

// Dimension - имя оси фильтрации.
type Dimension string

const (
	DimensionLocation       Dimension = "location"
	DimensionCategory       Dimension = "category"
	DimensionBuildingType   Dimension = "buildingType"
	DimensionDesignCategory Dimension = "designCategory"
	DimensionFeature        Dimension = "feature"
)

// KnownDimensions в порядке, в котором они отдаются клиенту.
var KnownDimensions = []Dimension{
	DimensionLocation,
	DimensionCategory,
	DimensionBuildingType,
	DimensionDesignCategory,
	DimensionFeature,
}

// FilterCriteria - выбранные пользователем значения по каждой оси.
// Пустая или отсутствующая ось ничего не ограничивает.
type FilterCriteria map[Dimension][]string

// FilterResult - результат применения фильтра к каталогу.
type FilterResult struct {
	Listings []Listing
	// Ignored - оси из запроса, которых нет в схеме объявления.
	Ignored []Dimension
}

// tagSource возвращает строки объявления, с которыми сравнивается значение оси.
type tagSource func(l Listing) []string

var dimensionSources = map[Dimension]tagSource{
	DimensionLocation:       func(l Listing) []string { return []string{l.Location} },
	DimensionCategory:       func(l Listing) []string { return l.Categories },
	DimensionBuildingType:   featureTags,
	DimensionDesignCategory: func(l Listing) []string { return append(append([]string{}, l.Categories...), featureTags(l)...) },
	DimensionFeature:        featureTags,
}

func featureTags(l Listing) []string {
	tags := make([]string, 0, len(l.Features)*2)
	for _, f := range l.Features {
		tags = append(tags, f.Label, f.Value)
	}
	return tags
}

// IsKnown сообщает, есть ли такая ось в схеме объявления.
func (d Dimension) IsKnown() bool {
	_, ok := dimensionSources[d]
	return ok
}

// active возвращает нормализованные непустые значения оси.
func (c FilterCriteria) active(d Dimension) []string {
	var values []string
	for _, v := range c[d] {
		if n := normalizeTag(v); n != "" {
			values = append(values, n)
		}
	}
	return values
}

// Filter возвращает подпоследовательность каталога, удовлетворяющую всем
// активным осям (AND между осями, OR внутри оси). Порядок каталога сохраняется.
// Неизвестные оси игнорируются и перечисляются в FilterResult.Ignored.
func Filter(catalog []Listing, criteria FilterCriteria) FilterResult {
	type activeDim struct {
		source tagSource
		values []string
	}

	var (
		dims    []activeDim
		ignored []Dimension
	)
	for d := range criteria {
		source, ok := dimensionSources[d]
		if !ok {
			ignored = append(ignored, d)
			continue
		}
		if values := criteria.active(d); len(values) > 0 {
			dims = append(dims, activeDim{source: source, values: values})
		}
	}
	sort.Slice(ignored, func(i, j int) bool { return ignored[i] < ignored[j] })

	result := make([]Listing, 0, len(catalog))
	for _, listing := range catalog {
		matched := true
		for _, dim := range dims {
			if !matchesAny(dim.source(listing), dim.values) {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, listing)
		}
	}

	return FilterResult{Listings: result, Ignored: ignored}
}

// matchesAny: хотя бы одно значение содержится хотя бы в одном теге.
// values уже нормализованы.
func matchesAny(tags []string, values []string) bool {
	for _, tag := range tags {
		t := normalizeTag(tag)
		if t == "" {
			continue
		}
		for _, v := range values {
			if strings.Contains(t, v) {
				return true
			}
		}
	}
	return false
}

// normalizeTag приводит строку к нижнему регистру, заменяет '-' и '_' на
// пробелы и схлопывает пробелы, чтобы "high-physical-support" совпадало
// с "High Physical Support".
func normalizeTag(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}
