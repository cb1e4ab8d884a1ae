package models

// Project is a catalog entry. Rows are created out-of-band by seeding and are
// never changed by the API.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
