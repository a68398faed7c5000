package entities

import (
	"time"
)

// É o "nó" do grafo familiar.
type Member struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Gender    string `json:"gender"`
	// Datas opcionais: nil representa "desconhecido", nunca string vazia.
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	DeathDate       *time.Time `json:"death_date,omitempty"`
	BirthPlace      *string    `json:"birth_place,omitempty"`
	CurrentLocation *string    `json:"current_location,omitempty"`
	Biography       *string    `json:"biography,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
