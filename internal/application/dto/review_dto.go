package dto

import (
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// CreateReviewRequest formulario público de reseña. approved/featured no se aceptan.
type CreateReviewRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=1,max=2000"`
}

// ReviewRequestFromEntity petición de alta a partir del registro.
func ReviewRequestFromEntity(r *entity.Review) CreateReviewRequest {
	return CreateReviewRequest{Name: r.Name, Email: r.Email, Rating: r.Rating, Comment: r.Comment}
}

// UpdateReviewRequest moderación de una reseña (solo campos presentes).
type UpdateReviewRequest struct {
	Approved *bool `json:"approved,omitempty"`
	Featured *bool `json:"featured,omitempty"`
}

// Patch convierte la petición en el patch de dominio.
func (r UpdateReviewRequest) Patch() entity.ReviewPatch {
	return entity.ReviewPatch{Approved: r.Approved, Featured: r.Featured}
}

// ReviewUpdateFromPatch inverso de Patch.
func ReviewUpdateFromPatch(p entity.ReviewPatch) UpdateReviewRequest {
	return UpdateReviewRequest{Approved: p.Approved, Featured: p.Featured}
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToReviewResponse convierte la entidad en DTO.
func ToReviewResponse(r *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID: r.ID, Name: r.Name, Email: r.Email, Rating: r.Rating, Comment: r.Comment,
		Approved: r.Approved, Featured: r.Featured, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// ToEntity convierte el DTO en entidad.
func (r ReviewResponse) ToEntity() *entity.Review {
	return &entity.Review{
		ID: r.ID, Name: r.Name, Email: r.Email, Rating: r.Rating, Comment: r.Comment,
		Approved: r.Approved, Featured: r.Featured, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}
