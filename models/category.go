package models

import "time"

// CategoryEntry is one row of the Category → Type → Subtype hierarchy.
// The (Category, Type, SubType) triple is unique.
type CategoryEntry struct {
	CategoryID int64     `db:"category_id" json:"category_id"`
	Category   string    `db:"category" json:"category"`
	Type       string    `db:"type" json:"type"`
	SubType    string    `db:"subtype" json:"subtype"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// CategoryHierarchy is the nested mapping served to cascading form
// dropdowns: Category → Type → [Subtype, ...].
type CategoryHierarchy map[string]map[string][]string
