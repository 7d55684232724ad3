package repository

import (
	"context"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// ReviewRepository define el puerto de persistencia para Review.
type ReviewRepository interface {
	Table[entity.Review, entity.ReviewPatch]
	GetByID(ctx context.Context, id string) (*entity.Review, error)
}

// CanonicalReviewOrder orden del panel de reseñas.
func CanonicalReviewOrder() Query { return Query{}.OrderBy("created_at", false) }

// PublicReviewQuery reseñas visibles en el sitio público.
func PublicReviewQuery() Query { return CanonicalReviewOrder().Where("approved", true) }
