package models

import "time"

// Product is a single inventory line owned by a user. A persisted product
// always has Quantity >= 1; a quantity that reaches zero deletes the row
// instead of storing a zero.
type Product struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"productName"`
	Category string `json:"itemType"`
	Quantity int    `json:"quantity"`
	IsPublic bool   `json:"isPublic"`
	// CreatedAt is set once on insert and is the only ordering key.
	CreatedAt time.Time `json:"timestamp"`
}
