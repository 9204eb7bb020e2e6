package domain

import "time"

// Product is a read-only menu entry.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
	IsActive    bool
	CreatedAt   time.Time
}
