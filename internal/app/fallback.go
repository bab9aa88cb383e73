package app

import "tour_service/internal/domain"

// SampleTours is served when the catalog has nothing to show. A fresh slice is
// returned on every call so callers may mutate it.
func SampleTours() []domain.Tour {
	return []domain.Tour{
		{
			Title:        "Explore Bali Paradise",
			Description:  "Paket liburan 4 hari 3 malam mencakup Ubud, Kintamani, dan Pantai Pandawa.",
			Price:        299.0,
			DurationDays: 4,
			Location:     "Bali, Indonesia",
			ImageURL:     ptr("https://images.unsplash.com/photo-1542978708-6f1a7a7f33f3"),
			Highlights:   []string{"Ubud rice terrace", "Mount Batur sunrise", "Beach hopping"},
			Rating:       ptr(4.9),
		},
		{
			Title:        "Magelang & Borobudur Escape",
			Description:  "2 hari menikmati sunrise di Borobudur dan kuliner lokal.",
			Price:        159.0,
			DurationDays: 2,
			Location:     "Yogyakarta, Indonesia",
			ImageURL:     ptr("https://images.unsplash.com/photo-1541417904950-b855846fe074"),
			Highlights:   []string{"Borobudur sunrise", "Malioboro tour"},
			Rating:       ptr(4.7),
		},
	}
}

func ptr[T any](v T) *T { return &v }
