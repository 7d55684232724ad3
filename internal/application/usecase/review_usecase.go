package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/afrispot-api/internal/application/dto"
	"github.com/jhoicas/afrispot-api/internal/application/ports"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

// ReviewUseCase casos de uso de reseñas: envío público, moderación y listado público.
type ReviewUseCase struct {
	repo      repository.ReviewRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewReviewUseCase construye el caso de uso. publisher puede ser nil.
func NewReviewUseCase(repo repository.ReviewRepository, publisher ports.EventPublisher, log zerolog.Logger) *ReviewUseCase {
	return &ReviewUseCase{repo: repo, publisher: publisher, log: log}
}

// Submit registra una reseña del sitio público: siempre sin aprobar y sin destacar.
func (uc *ReviewUseCase) Submit(ctx context.Context, in dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	created, err := uc.repo.Insert(ctx, &entity.Review{
		Name:     in.Name,
		Email:    in.Email,
		Rating:   in.Rating,
		Comment:  in.Comment,
		Approved: false,
		Featured: false,
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToReviewResponse(created)
	publish(ctx, uc.publisher, uc.log, dto.Event{Type: dto.EventReviewSubmitted, Review: &out})
	return &out, nil
}

// List lista reseñas del panel; sin orden explícito usa el canónico.
func (uc *ReviewUseCase) List(ctx context.Context, q repository.Query) ([]dto.ReviewResponse, error) {
	if q.Order == nil {
		q.Order = repository.CanonicalReviewOrder().Order
	}
	list, err := uc.repo.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	return toReviewResponses(list), nil
}

// Public reseñas aprobadas para el sitio público. Destacada sin aprobar no aparece.
func (uc *ReviewUseCase) Public(ctx context.Context) ([]dto.ReviewResponse, error) {
	list, err := uc.repo.Select(ctx, repository.PublicReviewQuery())
	if err != nil {
		return nil, err
	}
	return toReviewResponses(entity.PublicReviews(list)), nil
}

// Moderate cambia approved/featured (solo los presentes).
func (uc *ReviewUseCase) Moderate(ctx context.Context, id string, in dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	updated, err := uc.repo.Update(ctx, id, in.Patch())
	if err != nil {
		return nil, err
	}
	out := dto.ToReviewResponse(updated)
	return &out, nil
}

// Delete elimina la reseña.
func (uc *ReviewUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toReviewResponses(list []*entity.Review) []dto.ReviewResponse {
	out := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.ToReviewResponse(r))
	}
	return out
}
