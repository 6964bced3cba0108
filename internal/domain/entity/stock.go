package entity

import "time"

// Stock registro 1:1 con Product: stock físico y comprometido (reservado).
// StockComprometido <= StockFisico no se fuerza; solo se registra como advertencia.
type Stock struct {
	ProductID         string
	StockFisico       int
	StockComprometido int
	UpdatedAt         time.Time
}

// Overcommitted indica si lo comprometido supera lo físico.
func (s *Stock) Overcommitted() bool {
	return s.StockComprometido > s.StockFisico
}
