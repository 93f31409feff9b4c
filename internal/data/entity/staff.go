package entity

type Staff struct {
	Base
	Name     string `db:"name"`
	IsActive bool   `db:"is_active"`
}
