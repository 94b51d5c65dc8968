package domain

import "strings"

type ShootType string

const (
	WeddingPhotography  ShootType = "Wedding Photography"
	BirthdayPhotography ShootType = "Birthday Photography"
	EventPhotography    ShootType = "Event Photography"
	FashionShoot        ShootType = "Fashion Shoot"
	ReelMaking          ShootType = "Reel Making"
	ProductShoot        ShootType = "Product Shoot"
	TravelShoot         ShootType = "Travel Shoot"
	ConcertShoot        ShootType = "Concert Shoot"
	CorporateShoot      ShootType = "Corporate Shoot"
)

var ShootTypes = []ShootType{
	WeddingPhotography,
	BirthdayPhotography,
	EventPhotography,
	FashionShoot,
	ReelMaking,
	ProductShoot,
	TravelShoot,
	ConcertShoot,
	CorporateShoot,
}

func (t ShootType) Valid() bool {
	for _, s := range ShootTypes {
		if s == t {
			return true
		}
	}
	return false
}

type CameraType string

var CameraTypes = []CameraType{
	"Smartphone", "DSLR", "Mirrorless Camera",
	"iPhone 13", "iPhone 13 Mini", "iPhone 13 Pro", "iPhone 13 Pro Max",
	"iPhone 14", "iPhone 14 Plus", "iPhone 14 Pro", "iPhone 14 Pro Max",
	"iPhone 15", "iPhone 15 Plus", "iPhone 15 Pro", "iPhone 15 Pro Max",
	"iPhone 16", "iPhone 16 Plus", "iPhone 16 Pro", "iPhone 16 Pro Max",
	"Samsung Galaxy S23 Ultra", "Samsung Galaxy S24 Ultra", "Samsung Galaxy S25 Ultra",
}

func (c CameraType) Valid() bool {
	for _, t := range CameraTypes {
		if t == c {
			return true
		}
	}
	return false
}

// ValidateSkills checks that every skill belongs to the category list.
func ValidateSkills(skills []ShootType) error {
	for _, s := range skills {
		if !s.Valid() {
			return NewValidationError("unknown skill: " + string(s))
		}
	}
	return nil
}

func ValidateEquipment(equipment []CameraType) error {
	if len(equipment) == 0 {
		return NewValidationError("camera type is required")
	}
	for _, c := range equipment {
		if !c.Valid() {
			return NewValidationError("unknown camera type: " + string(c))
		}
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
