package domain

import "math"

// CountBucket is one group of an aggregation: a key and how many leads fell in it.
type CountBucket struct {
	Key   string `json:"_id" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// SellerRank summarises one seller's pipeline.
type SellerRank struct {
	SellerID   string `json:"_id" bson:"_id"`
	SellerName string `json:"vendedor_nome" bson:"vendedor_nome"`
	TotalLeads int64  `json:"total_leads" bson:"total_leads"`
	Enrolled   int64  `json:"matriculados" bson:"matriculados"`
}

// Dashboard is the aggregate view shown to coordinators and administrators.
type Dashboard struct {
	TotalLeads         int64         `json:"total_leads"`
	StatusDistribution []CountBucket `json:"status_distribution"`
	CourseDistribution []CountBucket `json:"curso_distribution"`
	SellerRanking      []SellerRank  `json:"vendedor_ranking"`
	MonthlyLeads       []CountBucket `json:"monthly_leads"`
	ConversionRate     float64       `json:"taxa_conversao"`
}

// LeadStats is a seller's own summary.
type LeadStats struct {
	Total   int64         `json:"total"`
	Monthly []CountBucket `json:"monthly"`
}

// Percentage returns part/total*100 rounded to one decimal; zero when total is zero.
func Percentage(part, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
