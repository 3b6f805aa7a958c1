package models

import "time"

type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	OwnerID     string    `json:"user_id"`
}

// EventUpdate lists the only fields a PUT may overwrite.
type EventUpdate struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
}

func (e *Event) Apply(u EventUpdate) {
	e.Name = u.Name
	e.Description = u.Description
	e.StartDate = u.StartDate
	e.EndDate = u.EndDate
}
