// Copyright (c) 2026 O Quarto Selo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// ProfileTable represents the 'profiles' table
type ProfileTable struct {
	Table     string
	ID        string
	Username  string
	FullName  string
	Bio       string
	AvatarURL string
	UpdatedAt string

	// UsernameKey is the unique constraint on Username
	UsernameKey string
}

// Profile is the schema definition for profiles
var Profile = ProfileTable{
	Table:       "profiles",
	ID:          "id",
	Username:    "username",
	FullName:    "full_name",
	Bio:         "bio",
	AvatarURL:   "avatar_url",
	UpdatedAt:   "updated_at",
	UsernameKey: "profiles_username_key",
}

// Columns returns all standard column names
func (t ProfileTable) Columns() []string {
	return []string{t.ID, t.Username, t.FullName, t.Bio, t.AvatarURL, t.UpdatedAt}
}
