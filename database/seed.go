package database

import (
	"fmt"
	"log"
)

// EnsureSeedCategories создает стандартный набор категорий, если таблица
// пуста. Идемпотентно: повторный вызов ничего не меняет.
func (db *DB) EnsureSeedCategories() error {
	count, err := db.CountCategories()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []Category{
		{Name: "Car Rentals", Slug: "car-rentals", Icon: "car"},
		{Name: "Bus Timings", Slug: "bus-timings", Icon: "bus"},
		{Name: "Restaurants", Slug: "restaurants", Icon: "utensils"},
		{Name: "Tourist Places", Slug: "tourist-places", Icon: "map-marked-alt"},
		{Name: "Hotels", Slug: "hotels", Icon: "hotel"},
		{Name: "Trains", Slug: "trains", Icon: "train"},
		{Name: "Flights", Slug: "flights", Icon: "plane"},
	}

	for _, c := range seed {
		if _, err := db.InsertCategory(c.Name, c.Slug, c.Icon); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
		}
	}

	log.Printf("✓ Создано категорий: %d", len(seed))
	return nil
}

// EnsureSeedPlaces добавляет запасные демонстрационные места, если таблица
// пуста (например, внешние провайдеры недоступны при первом запуске).
func (db *DB) EnsureSeedPlaces() error {
	count, err := db.CountPlaces()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	bySlug := make(map[string]int)
	categories, err := db.GetCategories()
	if err != nil {
		return err
	}
	for _, c := range categories {
		bySlug[c.Slug] = c.ID
	}

	seed := []Place{
		{
			CategoryID:   bySlug["car-rentals"],
			Name:         "Speedy Wheels",
			Description:  "Affordable and fast car rentals for your city trip.",
			PriceFee:     "$50/day",
			CrowdLevel:   "Medium",
			Location:     "123 Main St, City Center",
			Phone:        "+1234567890",
			MapLink:      "https://maps.google.com",
			OpeningHours: "8:00 AM - 8:00 PM",
			ImageURL:     "https://source.unsplash.com/400x300/?car,rental",
		},
		{
			CategoryID:   bySlug["bus-timings"],
			Name:         "Express Line 101",
			Description:  "Direct bus to the mountains.",
			PriceFee:     "$12/ticket",
			CrowdLevel:   "High",
			Location:     "Central Bus Station",
			MapLink:      "https://maps.google.com",
			OpeningHours: "Every 30 mins",
			ImageURL:     "https://source.unsplash.com/400x300/?bus,station",
		},
		{
			CategoryID:   bySlug["restaurants"],
			Name:         "The Gourmet Spot",
			Description:  "Fine dining experience with local cuisine.",
			PriceFee:     "$$-$$$",
			CrowdLevel:   "High",
			Location:     "456 Foodie Lane",
			Phone:        "+9876543210",
			MapLink:      "https://maps.google.com",
			OpeningHours: "11:00 AM - 10:00 PM",
			ImageURL:     "https://source.unsplash.com/400x300/?restaurant",
		},
		{
			CategoryID:   bySlug["tourist-places"],
			Name:         "Sunset Viewpoint",
			Description:  "Best place to see the sunset over the city.",
			PriceFee:     "Free",
			CrowdLevel:   "Low",
			Location:     "Top of the Hill",
			MapLink:      "https://maps.google.com",
			OpeningHours: "24/7",
			ImageURL:     "https://source.unsplash.com/400x300/?viewpoint",
		},
	}

	inserted := 0
	for _, p := range seed {
		if p.CategoryID == 0 {
			continue
		}
		if _, err := db.InsertPlace(p); err != nil {
			return fmt.Errorf("failed to seed place %s: %w", p.Name, err)
		}
		inserted++
	}

	log.Printf("✓ Создано демонстрационных мест: %d", inserted)
	return nil
}
