package services

import (
	"sort"

	"tripserver/geo/types"
)

// CategoryEntry связывает slug категории с параметрами поиска у провайдеров
// и картинкой-заглушкой для записей без собственного изображения.
type CategoryEntry struct {
	Config   types.CategoryConfig
	ImageURL string
}

// categoryRegistry статический реестр поддерживаемых категорий.
// Slug здесь должен совпадать со slug категории в базе данных.
var categoryRegistry = map[string]CategoryEntry{
	"restaurants": {
		Config: types.CategoryConfig{
			Query:  "restaurant",
			Filter: `["amenity"="restaurant"]`,
			Label:  "Restaurants",
		},
		ImageURL: "https://source.unsplash.com/400x300/?restaurant",
	},
	"car-rentals": {
		Config: types.CategoryConfig{
			Query:  "car rental",
			Filter: `["amenity"="car_rental"]`,
			Label:  "Car Rentals",
		},
		ImageURL: "https://source.unsplash.com/400x300/?car,rental",
	},
	"bus-timings": {
		Config: types.CategoryConfig{
			Query:  "bus station",
			Filter: `["amenity"="bus_station"]`,
			Label:  "Bus Timings",
		},
		ImageURL: "https://source.unsplash.com/400x300/?bus,station",
	},
	"tourist-places": {
		Config: types.CategoryConfig{
			Query:  "tourist attraction",
			Filter: `["tourism"~"attraction|museum|viewpoint"]`,
			Label:  "Tourist Places",
		},
		ImageURL: "https://source.unsplash.com/400x300/?landmark",
	},
	"hotels": {
		Config: types.CategoryConfig{
			Query:  "hotel",
			Filter: `["tourism"="hotel"]`,
			Label:  "Hotels",
		},
		ImageURL: "https://source.unsplash.com/400x300/?hotel",
	},
	"trains": {
		Config: types.CategoryConfig{
			Query:  "railway station",
			Filter: `["railway"="station"]`,
			Label:  "Trains",
		},
		ImageURL: "https://source.unsplash.com/400x300/?train,station",
	},
	"flights": {
		Config: types.CategoryConfig{
			Query:  "airport",
			Filter: `["aeroway"="aerodrome"]`,
			Label:  "Flights",
		},
		ImageURL: "https://source.unsplash.com/400x300/?airport",
	},
}

// slugBusTimings единственная категория с симулированным real_time блоком
const slugBusTimings = "bus-timings"

// CategoryEntryFor возвращает параметры поиска для slug категории.
// Второе значение false означает, что категория не поддерживается.
func CategoryEntryFor(slug string) (CategoryEntry, bool) {
	entry, ok := categoryRegistry[slug]
	return entry, ok
}

// SupportedSlugs возвращает отсортированный список всех поддерживаемых
// slug категорий
func SupportedSlugs() []string {
	slugs := make([]string, 0, len(categoryRegistry))
	for slug := range categoryRegistry {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}
