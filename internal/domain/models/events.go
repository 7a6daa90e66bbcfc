package models

import "time"

// Observation is one recorded reading of a slot.
type Observation struct {
	At     time.Time `json:"at"`
	Slot   Slot      `json:"slot"`
	Value  string    `json:"value"`
	Change float64   `json:"change"`
	Status string    `json:"status,omitempty"`
}

type ContentAction string

const (
	ActionCreated ContentAction = "created"
	ActionUpdated ContentAction = "updated"
	ActionDeleted ContentAction = "deleted"
	ActionSaved   ContentAction = "saved"
)

// ContentEvent describes one content mutation.
type ContentEvent struct {
	ID     string        `json:"id"`
	Entity string        `json:"entity"` // dashboard, routine_article, page_article, subscriber
	Action ContentAction `json:"action"`
	Key    string        `json:"key"`
	At     time.Time     `json:"at"`
}
