// Package seed alta de la cuenta de administrador y de la carta por defecto.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// AccountTx ejecuta fn con los repos de usuarios y roles en una misma transacción.
type AccountTx interface {
	RunAccounts(ctx context.Context, fn func(users repository.UserRepository, roles repository.RoleRepository) error) error
}

// MenuTx ejecuta fn con los repos de la carta en una misma transacción.
type MenuTx interface {
	RunMenu(ctx context.Context, fn func(categories repository.MenuCategoryRepository, items repository.MenuItemRepository) error) error
}

// BootstrapAdmin crea la cuenta de administrador con su rol. Si la cuenta ya existe solo
// asegura el rol (la contraseña existente no se toca). Devuelve el ID y si se creó.
func BootstrapAdmin(ctx context.Context, tx AccountTx, email, password string) (string, bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) < 8 {
		return "", false, fmt.Errorf("%w: email requerido y contraseña de al menos 8 caracteres", domain.ErrInvalidInput)
	}
	var (
		id      string
		created bool
	)
	err := tx.RunAccounts(ctx, func(users repository.UserRepository, roles repository.RoleRepository) error {
		now := time.Now()
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			id = existing.ID
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			u := &entity.User{
				ID:           uuid.New().String(),
				Email:        email,
				PasswordHash: string(hash),
				Name:         "Administrador",
				Status:       entity.UserStatusActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := users.Create(ctx, u); err != nil {
				return err
			}
			id, created = u.ID, true
		}
		return roles.Assign(ctx, &entity.RoleAssignment{UserID: id, Role: entity.RoleAdmin, CreatedAt: now})
	})
	if err != nil {
		return "", false, fmt.Errorf("bootstrap admin: %w", err)
	}
	return id, created, nil
}

// Dish plato de la carta por defecto. Price en FRCS, sin céntimos.
type Dish struct {
	Name        string
	Description string
	Price       int64
}

// Section categoría de la carta por defecto.
type Section struct {
	Name   string
	Slug   string
	Icon   string
	Dishes []Dish
}

// DefaultMenu carta con la que abre el restaurante.
var DefaultMenu = []Section{
	{Name: "Nos Entrées", Slug: "entrees", Icon: "utensils-crossed", Dishes: []Dish{
		{"Yassa au Poulet", "Poulet mariné aux oignons et citron, riz parfumé", 10000},
		{"Thieboudienne Rouge", "Riz au poisson traditionnel avec légumes", 12000},
		{"Mafé au Bœuf", "Bœuf mijoté dans une sauce arachide onctueuse", 11000},
		{"Poulet DG", "Poulet aux légumes et plantains", 11500},
	}},
	{Name: "Nos Desserts", Slug: "desserts", Icon: "ice-cream", Dishes: []Dish{
		{"Thiakry au Coco", "Dessert traditionnel au lait de coco et vanille", 3000},
		{"Ngalakh", "Mélange de mil, fruits secs et pâte d'arachide", 2500},
		{"Glace Bissap", "Glace artisanale à l'hibiscus", 2000},
	}},
	{Name: "Nos Boissons", Slug: "boissons", Icon: "coffee", Dishes: []Dish{
		{"Bissap Glacé", "Boisson d'hibiscus fraîche et parfumée", 2000},
		{"Jus de Baobab", "Jus naturel du fruit de baobab", 2500},
		{"Café Touba", "Café épicé traditionnel sénégalais", 1500},
		{"Thé Attaya", "Thé à la menthe préparé traditionnellement", 1000},
	}},
	{Name: "Nos Spécialités", Slug: "specialites", Icon: "star", Dishes: []Dish{
		{"Ceebu Jën Spécial", "Notre thieboudienne signature aux fruits de mer", 15000},
		{"Yassa Poisson Royal", "Poisson noble préparé selon la tradition", 14000},
		{"Thiou à la Viande", "Couscous sénégalais aux légumes", 12500},
	}},
	{Name: "Nos Accompagnements", Slug: "accompagnements", Icon: "soup", Dishes: []Dish{
		{"Riz Parfumé", "Riz basmati aux épices sénégalaises", 2000},
		{"Plantains Grillés", "Bananes plantains caramélisées", 2200},
		{"Pain Traditionnel", "Pain local fait maison", 500},
	}},
}

// SeedMenu crea las secciones cuyo slug aún no existe, con sus platos. Las existentes no se tocan.
// Devuelve cuántas categorías y platos se crearon.
func SeedMenu(ctx context.Context, tx MenuTx, sections []Section) (categories, dishes int, err error) {
	err = tx.RunMenu(ctx, func(cats repository.MenuCategoryRepository, items repository.MenuItemRepository) error {
		for _, s := range sections {
			existing, err := cats.GetBySlug(ctx, s.Slug)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			c, err := cats.Insert(ctx, &entity.MenuCategory{Name: s.Name, Slug: s.Slug, Icon: s.Icon})
			if err != nil {
				return fmt.Errorf("categoría %s: %w", s.Slug, err)
			}
			categories++
			for _, d := range s.Dishes {
				if _, err := items.Insert(ctx, &entity.MenuItem{
					Name: d.Name, Description: d.Description, Price: d.Price, CategoryID: c.ID, Available: true,
				}); err != nil {
					return fmt.Errorf("plato %s: %w", d.Name, err)
				}
				dishes++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("seed menu: %w", err)
	}
	return categories, dishes, nil
}
