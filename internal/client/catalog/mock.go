package catalog

import (
	"context"
	"time"

	"github.com/wintakam/wintakam/internal/client/models"
)

// MockService serves a fixed set of listings with simulated latency. It lets
// the UI be developed and demoed without a reachable backend.
type MockService struct {
	properties []models.Property
}

// NewMockService seeds the mock catalog.
func NewMockService() *MockService {
	now := time.Now()
	ptr := func(s string) *string { return &s }
	fptr := func(f float64) *float64 { return &f }
	iptr := func(i int) *int { return &i }

	return &MockService{properties: []models.Property{
		{
			ID:           "1",
			Title:        "Belle villa moderne à Bonanjo",
			Description:  "Magnifique villa de 4 chambres avec piscine et jardin. Vue sur mer exceptionnelle.",
			PropertyType: models.PropertyTypeHouse,
			Price:        85000000,
			Currency:     DefaultCurrency,
			Location:     "Bonanjo, Douala",
			Address:      ptr("Avenue de la Liberté, Bonanjo"),
			Area:         fptr(250),
			Bedrooms:     iptr(4),
			Bathrooms:    iptr(3),
			ImageURL:     ptr("https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800"),
			Status:       models.PropertyStatusAvailable,
			CreatedAt:    now.AddDate(0, 0, -10),
			OwnerID:      "user1",
			Features:     []string{"Piscine", "Jardin", "Garage", "Climatisation"},
		},
		{
			ID:           "2",
			Title:        "Appartement 3 pièces à Akwa",
			Description:  "Appartement spacieux au cœur d'Akwa, proche de toutes commodités.",
			PropertyType: models.PropertyTypeApartment,
			Price:        35000000,
			Currency:     DefaultCurrency,
			Location:     "Akwa, Douala",
			Address:      ptr("Rue Joffre, Akwa"),
			Area:         fptr(120),
			Bedrooms:     iptr(3),
			Bathrooms:    iptr(2),
			ImageURL:     ptr("https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=800"),
			Status:       models.PropertyStatusAvailable,
			CreatedAt:    now.AddDate(0, 0, -5),
			OwnerID:      "user2",
			Features:     []string{"Parking", "Ascenseur", "Balcon"},
		},
		{
			ID:           "3",
			Title:        "Terrain à bâtir - Logbessou",
			Description:  "Terrain de 500m² dans un quartier résidentiel calme. Viabilisé et prêt à construire.",
			PropertyType: models.PropertyTypeLand,
			Price:        15000000,
			Currency:     DefaultCurrency,
			Location:     "Logbessou, Douala",
			Area:         fptr(500),
			ImageURL:     ptr("https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=800"),
			Status:       models.PropertyStatusAvailable,
			CreatedAt:    now.AddDate(0, 0, -15),
			OwnerID:      "user1",
			Features:     []string{"Viabilisé", "Clôturé", "Accès goudronné"},
		},
		{
			ID:           "4",
			Title:        "Duplex haut standing à Bonapriso",
			Description:  "Duplex luxueux de 5 chambres avec finitions haut de gamme.",
			PropertyType: models.PropertyTypeHouse,
			Price:        120000000,
			Currency:     DefaultCurrency,
			Location:     "Bonapriso, Douala",
			Address:      ptr("Boulevard de la République, Bonapriso"),
			Area:         fptr(300),
			Bedrooms:     iptr(5),
			Bathrooms:    iptr(4),
			ImageURL:     ptr("https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800"),
			Status:       models.PropertyStatusAvailable,
			CreatedAt:    now.AddDate(0, 0, -3),
			OwnerID:      "user3",
			Features:     []string{"Piscine", "Salle de sport", "Garage double", "Système de sécurité"},
		},
		{
			ID:           "5",
			Title:        "Studio meublé à Bali",
			Description:  "Studio tout équipé idéal pour étudiant ou jeune professionnel.",
			PropertyType: models.PropertyTypeApartment,
			Price:        12000000,
			Currency:     DefaultCurrency,
			Location:     "Bali, Douala",
			Area:         fptr(35),
			Bedrooms:     iptr(1),
			Bathrooms:    iptr(1),
			ImageURL:     ptr("https://images.unsplash.com/photo-1554995207-c18c203602cb?w=800"),
			Status:       models.PropertyStatusAvailable,
			CreatedAt:    now.AddDate(0, 0, -7),
			OwnerID:      "user2",
			Features:     []string{"Meublé", "Wifi", "Eau et électricité inclus"},
		},
	}}
}

func (s *MockService) GetAll(ctx context.Context) ([]models.Property, error) {
	if err := sleep(ctx, time.Second); err != nil {
		return nil, err
	}
	return append([]models.Property(nil), s.properties...), nil
}

func (s *MockService) GetByID(ctx context.Context, id string) (*models.Property, error) {
	if err := sleep(ctx, 500*time.Millisecond); err != nil {
		return nil, err
	}
	for _, p := range s.properties {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MockService) GetByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	if err := sleep(ctx, 800*time.Millisecond); err != nil {
		return nil, err
	}
	out := make([]models.Property, 0)
	for _, p := range s.properties {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
