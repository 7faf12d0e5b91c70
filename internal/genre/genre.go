// Copyright (c) 2026 Hondana. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package genre manages the catalogue's genre taxonomy.

Genres are a small, admin-curated reference set: reads are public, while
create/update/delete are restricted to administrators. Each genre carries
a URL-safe slug derived from its name.
*/
package genre

import "time"

// Genre represents a catalogue genre.
type Genre struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
)
