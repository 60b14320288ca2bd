package domain

import "time"

type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Product   Product   `json:"product"`
	CreatedAt time.Time `json:"createdAt"`
}
