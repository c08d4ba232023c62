package main

import (
	"log"

	"github.com/tastemap/backend/config"
	"github.com/tastemap/backend/internal/database"
	"github.com/tastemap/backend/internal/models"
)

// Seeds the catalog with a starter set of restaurants and dishes.
// Safe to run repeatedly: existing rows are left alone.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to inspect catalog: %v", err)
	}
	if count > 0 {
		log.Printf("Catalog already has %d restaurants, nothing to do", count)
		return
	}

	restaurants := []models.Restaurant{
		{Name: "Bella Napoli", Cuisine: "Italian", Description: "Wood-fired pizzas and handmade pasta in a family-run trattoria.", PriceRange: "$$", Location: "Downtown"},
		{Name: "Taj Spice House", Cuisine: "Indian", Description: "North Indian curries and tandoor specialties with house-ground spices.", PriceRange: "$$", Location: "Midtown"},
		{Name: "El Camino Taqueria", Cuisine: "Mexican", Description: "Street-style tacos and burritos with fresh salsas made daily.", PriceRange: "$", Location: "East Side"},
		{Name: "Bangkok Garden", Cuisine: "Thai", Description: "Classic Thai noodles and curries with adjustable heat levels.", PriceRange: "$$", Location: "Riverside"},
		{Name: "Golden Dragon", Cuisine: "Chinese", Description: "Cantonese and Sichuan dishes served family style.", PriceRange: "$$", Location: "Chinatown"},
		{Name: "Sakura Sushi", Cuisine: "Japanese", Description: "Omakase-grade sushi and small plates from a seasonal menu.", PriceRange: "$$$", Location: "Harbor District"},
		{Name: "Green Sprout", Cuisine: "Vegan", Description: "Plant-based bowls, burgers, and desserts made from scratch.", PriceRange: "$$", Location: "University Quarter"},
	}
	if err := db.Create(&restaurants).Error; err != nil {
		log.Fatalf("Failed to seed restaurants: %v", err)
	}

	byName := make(map[string]uint, len(restaurants))
	for _, r := range restaurants {
		byName[r.Name] = r.ID
	}

	dishes := []models.Dish{
		{RestaurantID: byName["Bella Napoli"], Name: "Margherita Pizza", Description: "San Marzano tomato, fior di latte, fresh basil", Price: 14.50, DietaryTags: models.TagList{"vegetarian"}},
		{RestaurantID: byName["Bella Napoli"], Name: "Spaghetti Carbonara", Description: "Guanciale, pecorino, black pepper", Price: 16.00, DietaryTags: models.TagList{}},
		{RestaurantID: byName["Bella Napoli"], Name: "Lasagna", Description: "Slow-cooked beef ragu layered with bechamel", Price: 17.00, DietaryTags: models.TagList{}},
		{RestaurantID: byName["Bella Napoli"], Name: "Tiramisu", Description: "Espresso-soaked ladyfingers, mascarpone cream", Price: 8.00, DietaryTags: models.TagList{"vegetarian"}},
		{RestaurantID: byName["Taj Spice House"], Name: "Chicken Tikka Masala", Description: "Tandoori chicken in a creamy tomato sauce", Price: 15.50, DietaryTags: models.TagList{"gluten-free"}},
		{RestaurantID: byName["Taj Spice House"], Name: "Vegetable Biryani", Description: "Basmati rice, seasonal vegetables, saffron", Price: 13.00, DietaryTags: models.TagList{"vegetarian", "vegan"}},
		{RestaurantID: byName["Taj Spice House"], Name: "Butter Chicken", Description: "Tender chicken in a rich buttery tomato gravy", Price: 16.00, DietaryTags: models.TagList{"gluten-free"}},
		{RestaurantID: byName["Taj Spice House"], Name: "Chana Masala", Description: "Chickpeas simmered with onion, tomato, and garam masala", Price: 12.00, DietaryTags: models.TagList{"vegetarian", "vegan", "gluten-free"}},
		{RestaurantID: byName["El Camino Taqueria"], Name: "Carne Asada Taco", Description: "Grilled marinated steak, onion, cilantro", Price: 4.50, DietaryTags: models.TagList{}},
		{RestaurantID: byName["El Camino Taqueria"], Name: "Veggie Burrito", Description: "Black beans, rice, grilled peppers, guacamole", Price: 10.00, DietaryTags: models.TagList{"vegetarian", "vegan"}},
		{RestaurantID: byName["Bangkok Garden"], Name: "Pad Thai", Description: "Rice noodles, tamarind, peanuts, lime", Price: 13.50, DietaryTags: models.TagList{"gluten-free"}},
		{RestaurantID: byName["Bangkok Garden"], Name: "Green Curry", Description: "Coconut milk, Thai basil, bamboo shoots", Price: 14.00, DietaryTags: models.TagList{"gluten-free", "vegan"}},
		{RestaurantID: byName["Golden Dragon"], Name: "Mapo Tofu", Description: "Silken tofu in a fiery Sichuan pepper sauce", Price: 12.50, DietaryTags: models.TagList{"vegetarian"}},
		{RestaurantID: byName["Golden Dragon"], Name: "Kung Pao Chicken", Description: "Wok-fried chicken, peanuts, dried chilies", Price: 14.00, DietaryTags: models.TagList{}},
		{RestaurantID: byName["Sakura Sushi"], Name: "Salmon Nigiri", Description: "Hand-pressed sushi rice topped with fresh salmon", Price: 7.00, DietaryTags: models.TagList{"gluten-free"}},
		{RestaurantID: byName["Sakura Sushi"], Name: "Vegetable Tempura", Description: "Seasonal vegetables in a light crisp batter", Price: 9.50, DietaryTags: models.TagList{"vegetarian"}},
		{RestaurantID: byName["Green Sprout"], Name: "Buddha Bowl", Description: "Quinoa, roasted vegetables, tahini dressing", Price: 12.00, DietaryTags: models.TagList{"vegan", "gluten-free"}},
		{RestaurantID: byName["Green Sprout"], Name: "Vegan Chocolate Cake", Description: "Rich chocolate cake with coconut cream frosting", Price: 7.50, DietaryTags: models.TagList{"vegan", "vegetarian"}},
	}
	if err := db.Create(&dishes).Error; err != nil {
		log.Fatalf("Failed to seed dishes: %v", err)
	}

	log.Printf("Seeded %d restaurants and %d dishes", len(restaurants), len(dishes))
}
