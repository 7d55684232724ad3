package dto

import (
	"time"

	"github.com/jhoicas/afrispot-api/internal/domain/entity"
)

// CreateReservationRequest formulario público de reserva. El estado no se acepta: siempre pending.
type CreateReservationRequest struct {
	Name            string    `json:"name" validate:"required,min=1,max=200"`
	Phone           string    `json:"phone" validate:"required,min=6,max=40"`
	Email           string    `json:"email,omitempty" validate:"omitempty,email"`
	DateTime        time.Time `json:"datetime" validate:"required"`
	Guests          FlexInt   `json:"guests" validate:"min=1,max=500"`
	SpecialRequests string    `json:"special_requests,omitempty" validate:"omitempty,max=2000"`
}

// ReservationRequestFromEntity petición de alta a partir del registro.
func ReservationRequestFromEntity(r *entity.Reservation) CreateReservationRequest {
	return CreateReservationRequest{
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		DateTime:        r.DateTime,
		Guests:          FlexInt(r.Guests),
		SpecialRequests: r.SpecialRequests,
	}
}

// UpdateReservationRequest cambio de estado por un administrador.
type UpdateReservationRequest struct {
	Status *string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// Patch convierte la petición en el patch de dominio.
func (r UpdateReservationRequest) Patch() entity.ReservationPatch {
	if r.Status == nil {
		return entity.ReservationPatch{}
	}
	st := entity.ReservationStatus(*r.Status)
	return entity.ReservationPatch{Status: &st}
}

// ReservationUpdateFromPatch inverso de Patch.
func ReservationUpdateFromPatch(p entity.ReservationPatch) UpdateReservationRequest {
	if p.Status == nil {
		return UpdateReservationRequest{}
	}
	s := string(*p.Status)
	return UpdateReservationRequest{Status: &s}
}

// ReservationResponse salida de una reserva.
type ReservationResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	DateTime        time.Time `json:"datetime"`
	Guests          int       `json:"guests"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReservationSheet hoja del día para imprimir.
type ReservationSheet struct {
	Restaurant   string
	Date         time.Time
	Reservations []ReservationResponse
}

// ToReservationResponse convierte la entidad en DTO.
func ToReservationResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:              r.ID,
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		DateTime:        r.DateTime,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
		Status:          string(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ToEntity convierte el DTO en entidad.
func (r ReservationResponse) ToEntity() *entity.Reservation {
	return &entity.Reservation{
		ID:              r.ID,
		Name:            r.Name,
		Phone:           r.Phone,
		Email:           r.Email,
		DateTime:        r.DateTime,
		Guests:          r.Guests,
		SpecialRequests: r.SpecialRequests,
		Status:          entity.ReservationStatus(r.Status),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
