package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Restaurant is a read-only catalog entity.
type Restaurant struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Cuisine     string `gorm:"not null;index" json:"cuisine"`
	Description string `gorm:"type:text" json:"description"`
	PriceRange  string `gorm:"size:3" json:"price_range"` // $, $$ or $$$
	Location    string `json:"location"`
}

func (Restaurant) TableName() string {
	return "restaurants"
}

// Dish is a read-only catalog entity belonging to exactly one restaurant.
type Dish struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	RestaurantID uint    `gorm:"not null;index" json:"restaurant_id"`
	Name         string  `gorm:"not null" json:"name"`
	Description  string  `gorm:"type:text" json:"description"`
	Price        float64 `json:"price"`
	DietaryTags  TagList `gorm:"type:text" json:"dietary_tags"`
}

func (Dish) TableName() string {
	return "dishes"
}

// TagList stores dietary tags as a brace-delimited string ("{vegan,spicy}")
// and scans both that format and a native array representation back to a
// flat list. The catalog may hold either; both parse to the same tags.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	return "{" + strings.Join(t, ",") + "}", nil
}

func (t *TagList) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*t = nil
		return nil
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("cannot scan %T into TagList", src)
	}

	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "{")
	raw = strings.TrimSuffix(raw, "}")
	if raw == "" {
		*t = TagList{}
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make(TagList, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			tags = append(tags, p)
		}
	}
	*t = tags
	return nil
}
