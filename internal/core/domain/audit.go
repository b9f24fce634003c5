package domain

import "time"

const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditBackup = "BACKUP"
)

const (
	EntityLead       = "lead"
	EntityUser       = "user"
	EntityCourse     = "course"
	EntityLeadStatus = "lead_status"
	EntitySystem     = "system"
)

// AuditLog records who changed what.
type AuditLog struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"usuario_id" bson:"usuario_id"`
	UserName  string    `json:"usuario_nome" bson:"usuario_nome"`
	Action    string    `json:"acao" bson:"acao"`
	Entity    string    `json:"entidade" bson:"entidade"`
	EntityID  string    `json:"entidade_id" bson:"entidade_id"`
	Details   string    `json:"detalhes,omitempty" bson:"detalhes,omitempty"`
	CreatedAt time.Time `json:"criado_em" bson:"criado_em"`
}
