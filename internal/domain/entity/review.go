package entity

import "time"

// Review opinión de un cliente. Se crea sin aprobar y sin destacar.
// Featured no implica Approved: la vista pública filtra siempre por Approved.
type Review struct {
	ID        string
	Name      string
	Email     string // opcional
	Rating    int    // 1..5
	Comment   string
	Approved  bool
	Featured  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPublic indica si la reseña puede mostrarse en el sitio público.
func (r *Review) IsPublic() bool { return r.Approved }

// PublicReviews filtra las reseñas visibles en el sitio público, conservando el orden.
func PublicReviews(list []*Review) []*Review {
	out := make([]*Review, 0, len(list))
	for _, r := range list {
		if r.IsPublic() {
			out = append(out, r)
		}
	}
	return out
}

// ReviewPatch moderación de una reseña; nil = sin cambio.
type ReviewPatch struct {
	Approved *bool
	Featured *bool
}

// IsEmpty indica que el patch no modifica nada.
func (p ReviewPatch) IsEmpty() bool { return p.Approved == nil && p.Featured == nil }

// Apply aplica el patch sobre r.
func (p ReviewPatch) Apply(r *Review) {
	if p.Approved != nil {
		r.Approved = *p.Approved
	}
	if p.Featured != nil {
		r.Featured = *p.Featured
	}
}
