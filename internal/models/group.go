package models

import "time"

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Chronic     string    `json:"chronic"`
	Location    string    `json:"location"`
	Schedule    string    `json:"schedule"`
	Master      int64     `json:"master"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Players and MasterUser are populated on demand by the group service.
	Players    []User   `json:"players,omitempty"`
	MasterUser *UserRef `json:"masterUser,omitempty"`
}
