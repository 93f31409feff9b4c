package entity

type Client struct {
	Base
	Name  string  `db:"name"`
	Phone string  `db:"phone"`
	Email *string `db:"email"`
}
