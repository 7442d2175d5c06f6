package models

import (
	"fmt"
	"strings"
)

// Category identifies a bookable service line. Each category owns one BookingTimePolicy.
type Category string

const (
	CategoryLab           Category = "lab"
	CategoryVaccination   Category = "vaccination"
	CategoryPhysiotherapy Category = "physiotherapy"
	CategoryGrooming      Category = "grooming"
	CategoryImaging       Category = "imaging"
)

// Categories lists every supported category in display order.
var Categories = []Category{
	CategoryLab,
	CategoryVaccination,
	CategoryPhysiotherapy,
	CategoryGrooming,
	CategoryImaging,
}

// ParseCategory accepts the category key case-insensitively, plus the short "physio" alias
// used by the mobile client.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "physio" {
		return CategoryPhysiotherapy, nil
	}
	for _, c := range Categories {
		if string(c) == key {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown service category %q", s)
}

func (c Category) String() string {
	return string(c)
}
