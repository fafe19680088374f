package entity

import "time"

// Store representa un almacén (godam) donde se guardan los bienes de la oficina.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
