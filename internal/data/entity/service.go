package entity

type Service struct {
	Base
	Name            string  `db:"name"`
	DurationMinutes int     `db:"duration_minutes"`
	Price           float64 `db:"price"`
	IsActive        bool    `db:"is_active"`
}
