package domain

// Course is an offering a lead can be interested in.
type Course struct {
	ID     string `json:"id" bson:"id"`
	Name   string `json:"nome" bson:"nome"`
	Active bool   `json:"ativo" bson:"ativo"`
}

// LeadStatus is a configurable pipeline stage with its display colour.
type LeadStatus struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"nome" bson:"nome"`
	Color string `json:"cor" bson:"cor"`
}
