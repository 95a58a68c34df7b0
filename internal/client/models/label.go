package models

// SelectLabel is a value/label pair offered to the user in a choice list.
type SelectLabel struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}
