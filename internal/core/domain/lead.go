package domain

import "time"

const (
	// DefaultLeadStatus is assigned to every new lead.
	DefaultLeadStatus = "Novo"
	// EnrolledStatus marks a converted lead in dashboards.
	EnrolledStatus = "Matriculado"
)

// Lead is a prospective student registered by a seller.
type Lead struct {
	ID         string    `json:"id" bson:"id"`
	FullName   string    `json:"nome_completo" bson:"nome_completo"`
	Phone      string    `json:"telefone" bson:"telefone"`
	Course     string    `json:"curso" bson:"curso"`
	Status     string    `json:"status" bson:"status"`
	SellerID   string    `json:"vendedor_id" bson:"vendedor_id"`
	SellerName string    `json:"vendedor_nome" bson:"vendedor_nome"`
	CreatedAt  time.Time `json:"criado_em" bson:"criado_em"`
	UpdatedAt  time.Time `json:"atualizado_em" bson:"atualizado_em"`
}

// LeadFilter narrows lead listings. Empty fields do not filter.
type LeadFilter struct {
	Course   string
	Status   string
	SellerID string
}

// LeadUpdate is a partial lead update. Nil fields are left untouched.
type LeadUpdate struct {
	Status   *string
	FullName *string
	Phone    *string
	Course   *string
}

func (u LeadUpdate) IsEmpty() bool {
	return u.Status == nil && u.FullName == nil && u.Phone == nil && u.Course == nil
}
