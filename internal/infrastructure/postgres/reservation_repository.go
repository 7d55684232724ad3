package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/afrispot-api/internal/domain"
	"github.com/jhoicas/afrispot-api/internal/domain/entity"
	"github.com/jhoicas/afrispot-api/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

var reservationColumns = columns{
	"id":         {"id", kindUUID},
	"status":     {"status", kindText},
	"email":      {"email", kindText},
	"phone":      {"phone", kindText},
	"guests":     {"guests", kindInt},
	"datetime":   {"datetime", kindTime},
	"created_at": {"created_at", kindTime},
	"updated_at": {"updated_at", kindTime},
}

// ReservationRepo tabla reservations sobre PostgreSQL (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

const reservationFields = `id, name, phone, email, datetime, guests, special_requests, status, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var r entity.Reservation
	var status string
	if err := row.Scan(
		&r.ID, &r.Name, &r.Phone, &r.Email, &r.DateTime, &r.Guests, &r.SpecialRequests,
		&status, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	r.Status = entity.ReservationStatus(status)
	return &r, nil
}

func (r *ReservationRepo) list(ctx context.Context, sql string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, res)
	}
	return list, rows.Err()
}

// Select lista reservas con filtros y orden de la lista blanca.
func (r *ReservationRepo) Select(ctx context.Context, q repository.Query) ([]*entity.Reservation, error) {
	where, args, err := buildWhereOrder(reservationColumns, q, nil)
	if err != nil {
		return nil, err
	}
	return r.list(ctx, "SELECT "+reservationFields+" FROM reservations"+where, args...)
}

// Insert persiste una reserva; sin estado se guarda como pending.
func (r *ReservationRepo) Insert(ctx context.Context, res *entity.Reservation) (*entity.Reservation, error) {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	if res.Status == "" {
		res.Status = entity.ReservationPending
	}
	row := r.q.QueryRow(ctx, `
		INSERT INTO reservations (id, name, phone, email, datetime, guests, special_requests, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+reservationFields,
		res.ID, res.Name, res.Phone, res.Email, res.DateTime, res.Guests, res.SpecialRequests, string(res.Status),
	)
	created, err := scanReservation(row)
	if err != nil {
		return nil, mapWriteError("insert reservation", err)
	}
	return created, nil
}

// Update cambia el estado de la reserva.
func (r *ReservationRepo) Update(ctx context.Context, id string, p entity.ReservationPatch) (*entity.Reservation, error) {
	set := newSetList()
	set.add("status", p.Status)
	if set.empty() {
		res, err := r.GetByID(ctx, id)
		if err == nil && res == nil {
			err = fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
		}
		return res, err
	}
	sql, args := set.sql("reservations", id, reservationFields, true)
	res, err := scanReservation(r.q.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, fmt.Errorf("update reservation %s: %w", id, domain.ErrNotFound)
		}
		return nil, mapWriteError("update reservation", err)
	}
	return res, nil
}

// Delete elimina la reserva.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "reservations", id)
}

// GetByID obtiene una reserva o (nil, nil).
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (*entity.Reservation, error) {
	res, err := scanReservation(r.q.QueryRow(ctx, "SELECT "+reservationFields+" FROM reservations WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgCode(err) == "22P02" {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return res, nil
}

// ListBetween reservas con datetime en [from, to) ordenadas por hora.
func (r *ReservationRepo) ListBetween(ctx context.Context, from, to time.Time) ([]*entity.Reservation, error) {
	return r.list(ctx, "SELECT "+reservationFields+` FROM reservations
		WHERE datetime >= $1 AND datetime < $2 ORDER BY datetime ASC`, from, to)
}
