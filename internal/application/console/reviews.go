package console

import (
	"context"
	"fmt"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/notice"
	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// ReviewFilter filtros del panel de reseñas.
type ReviewFilter string

const (
	ReviewsAll      ReviewFilter = "all"
	ReviewsApproved ReviewFilter = "approved"
	ReviewsPending  ReviewFilter = "pending"
	ReviewsFeatured ReviewFilter = "featured"
)

// ParseReviewFilter valida un filtro escrito por el operador.
func ParseReviewFilter(s string) (ReviewFilter, error) {
	switch f := ReviewFilter(s); f {
	case ReviewsAll, ReviewsApproved, ReviewsPending, ReviewsFeatured:
		return f, nil
	case "":
		return ReviewsAll, nil
	}
	return "", fmt.Errorf("filtro %q: %w", s, domain.ErrInvalidInput)
}

// SubmitReview envío público de una reseña: se crea siempre sin aprobar y sin destacar.
func (c *Console) SubmitReview(ctx context.Context, req dto.CreateReviewRequest) (*entity.Review, error) {
	if err := dto.Validate(req); err != nil {
		c.Feed.Notify(notice.Failure(err, "Revise los datos de la reseña"))
		return nil, err
	}
	created, err := c.Reviews.Insert(ctx, &entity.Review{
		Name:     req.Name,
		Email:    req.Email,
		Rating:   req.Rating,
		Comment:  req.Comment,
		Approved: false,
		Featured: false,
	})
	if err != nil {
		c.log.Error().Err(err).Str("op", "submit_review").Msg("reseña rechazada")
		c.Feed.Notify(notice.Failure(err, "No se pudo enviar la reseña"))
		return nil, err
	}
	c.Feed.Notify(notice.Success("Gracias por su opinión. Se publicará tras revisarla"))
	if c.Session.IsAdmin() {
		_ = c.Reviews.Refetch(ctx)
	}
	return created, nil
}

// SetApproved aprueba o retira una reseña del sitio público.
func (c *Console) SetApproved(ctx context.Context, id string, approved bool) (*entity.Review, error) {
	return c.Reviews.Update(ctx, id, entity.ReviewPatch{Approved: &approved})
}

// SetFeatured marca o desmarca una reseña como destacada. No cambia su aprobación.
func (c *Console) SetFeatured(ctx context.Context, id string, featured bool) (*entity.Review, error) {
	return c.Reviews.Update(ctx, id, entity.ReviewPatch{Featured: &featured})
}

// PublicReviews reseñas visibles en el sitio público, consultadas al backend.
func (c *Console) PublicReviews(ctx context.Context) ([]*entity.Review, error) {
	list, err := c.backend.Reviews.Select(ctx, repository.PublicReviewQuery())
	if err != nil {
		c.log.Error().Err(err).Str("op", "public_reviews").Msg("error al cargar reseñas públicas")
		c.Feed.Notify(notice.Failure(err, "No se pudieron cargar las reseñas"))
		return nil, err
	}
	return entity.PublicReviews(list), nil
}

// ReviewsByFilter reseñas en caché según el filtro del panel.
func (c *Console) ReviewsByFilter(f ReviewFilter) []*entity.Review {
	all := c.Reviews.List().Items
	if f == ReviewsAll || f == "" {
		return all
	}
	out := make([]*entity.Review, 0, len(all))
	for _, r := range all {
		switch {
		case f == ReviewsApproved && r.Approved,
			f == ReviewsPending && !r.Approved,
			f == ReviewsFeatured && r.Featured:
			out = append(out, r)
		}
	}
	return out
}

// ReviewCounters contadores del panel sobre la caché.
func (c *Console) ReviewCounters() entity.ReviewCounters {
	return entity.CountReviews(c.Reviews.List().Items)
}
