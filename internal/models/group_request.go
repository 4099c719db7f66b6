package models

import "time"

const (
	RequestStatusPending  = "PENDING"
	RequestStatusAccepted = "ACCEPTED"
)

type GroupRequest struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"groupId"`
	UserID    int64     `json:"userId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Group and User are filled in by the master's pending listing.
	Group *RequestGroup `json:"group,omitempty"`
	User  *RequestUser  `json:"user,omitempty"`
}

type RequestGroup struct {
	Name   string `json:"name"`
	Master int64  `json:"master"`
}

type RequestUser struct {
	Username string `json:"username"`
}
