// Copyright (c) 2026 Shortwave. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table       string
	ID          string
	Name        string
	Email       string
	Password    string
	Role        string
	PhotoURL    string
	LastLoginAt string
	CreatedAt   string
	UpdatedAt   string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:       "users.account",
	ID:          "id",
	Name:        "name",
	Email:       "email",
	Password:    "passwordhash",
	Role:        "role",
	PhotoURL:    "photourl",
	LastLoginAt: "lastloginat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Password, t.Role, t.PhotoURL,
		t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	}
}
