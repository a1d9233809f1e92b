// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// CatalogTagTable represents the 'catalog.tag' table
type CatalogTagTable struct {
	Table     string
	ID        string
	Name      string
	Slug      string
	IsCurated string
	SortOrder string
	CreatedAt string
}

// CatalogTag is the schema definition for catalog.tag
var CatalogTag = CatalogTagTable{
	Table:     "catalog.tag",
	ID:        "id",
	Name:      "name",
	Slug:      "slug",
	IsCurated: "iscurated",
	SortOrder: "sortorder",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t CatalogTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.IsCurated, t.SortOrder, t.CreatedAt}
}
