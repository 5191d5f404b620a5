package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/wintakam/wintakam/internal/client/models"
)

// List prints a one-line summary for every listing in the catalog.
func (a *App) List(ctx context.Context) error {
	properties, err := a.properties.GetAll(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	printSummaries(properties)
	return nil
}

// Mine prints the listings owned by the current user.
func (a *App) Mine(ctx context.Context) error {
	u := a.sessions.CurrentUser()
	if u == nil {
		fmt.Println("Connectez-vous d'abord (login).")
		return nil
	}

	properties, err := a.properties.GetByOwner(ctx, u.ID)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	printSummaries(properties)
	return nil
}

// Show prints the full detail of one listing.
func (a *App) Show(ctx context.Context, id string) error {
	p, err := a.properties.GetByID(ctx, id)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	if p == nil {
		fmt.Println("Propriété introuvable.")
		return nil
	}

	fmt.Println(p.Title)
	fmt.Println(strings.Repeat("-", len(p.Title)))
	fmt.Printf("Type : %s    Statut : %s\n", p.PropertyType, p.Status)
	fmt.Printf("Prix : %s\n", formatPrice(p.Price, p.Currency))
	fmt.Printf("Lieu : %s\n", p.Location)
	if p.Address != nil {
		fmt.Printf("Adresse : %s\n", *p.Address)
	}
	if p.Area != nil {
		fmt.Printf("Surface : %.0f m²\n", *p.Area)
	}
	if p.Bedrooms != nil {
		fmt.Printf("Chambres : %d\n", *p.Bedrooms)
	}
	if p.Bathrooms != nil {
		fmt.Printf("Salles de bain : %d\n", *p.Bathrooms)
	}
	if p.Description != "" {
		fmt.Println()
		fmt.Println(p.Description)
	}
	if len(p.Features) > 0 {
		fmt.Printf("\nÉquipements : %s\n", strings.Join(p.Features, ", "))
	}
	if p.ImageURL != nil {
		fmt.Printf("Photo : %s\n", *p.ImageURL)
	}
	return nil
}

func printSummaries(properties []models.Property) {
	if len(properties) == 0 {
		fmt.Println("Aucune propriété.")
		return
	}
	for _, p := range properties {
		fmt.Printf("%-8s %-40s %-20s %s\n", p.ID, truncate(p.Title, 40), p.Location, formatPrice(p.Price, p.Currency))
	}
}

func formatPrice(price float64, currency string) string {
	return fmt.Sprintf("%s %s", groupDigits(fmt.Sprintf("%.0f", price)), currency)
}

// groupDigits inserts spaces every three digits: "85000000" -> "85 000 000".
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
