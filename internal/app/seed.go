package app

import "travelnest/internal/domain"

// SeedHotels is written to an empty store. Ids are fixed so concurrent or
// repeated seeding overwrites instead of duplicating.
func SeedHotels() []domain.Hotel {
	return []domain.Hotel{
		{
			ID:          "1",
			Name:        "Luxury Hotel & Spa",
			Description: "Experience luxury at its finest with our world-class amenities and services.",
			Location:    "Cox's Bazar, Bangladesh",
			Price:       199.99,
			Rating:      4.8,
			Reviews:     220,
			Images:      []string{"hotel1_1", "hotel1_2", "hotel1_3"},
			Amenities:   []string{"WiFi", "Pool", "Spa", "Restaurant", "Gym"},
			Category:    "Luxury",
			IsPopular:   true,
			IsFeatured:  true,
		},
		{
			ID:          "2",
			Name:        "Business Center Hotel",
			Description: "Perfect for business travelers with modern facilities.",
			Location:    "Dhaka, Bangladesh",
			Price:       149.99,
			Rating:      4.5,
			Reviews:     180,
			Images:      []string{"hotel2_1", "hotel2_2", "hotel2_3"},
			Amenities:   []string{"WiFi", "Business Center", "Restaurant", "Gym"},
			Category:    "Business",
			IsPopular:   true,
			IsFeatured:  true,
		},
		{
			ID:          "3",
			Name:        "Sea Pearl Beach Resort",
			Description: "Luxury beachfront resort with stunning ocean views.",
			Location:    "Cox's Bazar, Bangladesh",
			Price:       299.99,
			Rating:      4.9,
			Reviews:     350,
			Images:      []string{"hotel3_1", "hotel3_2", "hotel3_3"},
			Amenities:   []string{"Beach Access", "Pool", "Spa", "Restaurant", "Bar"},
			Category:    "Resort",
			IsPopular:   true,
			IsFeatured:  true,
		},
		{
			ID:          "4",
			Name:        "Royal Palace Hotel",
			Description: "Experience royal treatment in the heart of the city.",
			Location:    "Dhaka, Bangladesh",
			Price:       259.99,
			Rating:      4.7,
			Reviews:     280,
			Images:      []string{"hotel4_1", "hotel4_2", "hotel4_3"},
			Amenities:   []string{"WiFi", "Pool", "Spa", "Restaurant", "Gym"},
			Category:    "Luxury",
			IsPopular:   true,
			IsFeatured:  true,
		},
		{
			ID:          "5",
			Name:        "Mountain View Resort",
			Description: "Peaceful retreat with breathtaking mountain views.",
			Location:    "Bandarban, Bangladesh",
			Price:       179.99,
			Rating:      4.6,
			Reviews:     190,
			Images:      []string{"hotel5_1", "hotel5_2", "hotel5_3"},
			Amenities:   []string{"Mountain View", "Restaurant", "Hiking", "Spa"},
			Category:    "Resort",
			IsPopular:   false,
			IsFeatured:  true,
		},
	}
}
