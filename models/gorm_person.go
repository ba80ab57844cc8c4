package models

import "strings"

// Person represents a person record. The same struct is used by the gorm
// repository (table 'persons') and by the file-backed repository.
// Optional fields are nil when absent, never empty strings.
type Person struct {
	ID        int     `gorm:"primaryKey;autoIncrement" json:"id"`
	LastName  *string `gorm:"size:100" json:"last_name,omitempty"`
	FirstName *string `gorm:"size:100" json:"first_name,omitempty"`
	Address   *string `gorm:"size:255" json:"address,omitempty"`
	Color     *int    `gorm:"index" json:"color,omitempty"` // catalog id 1..7, not coerced on storage
	Group     *int    `gorm:"column:group_no" json:"group,omitempty"`
}

// TableName explicitly sets the table name for GORM.
func (Person) TableName() string {
	return "persons"
}

// HasName reports whether at least one of the name fields carries text.
func (p Person) HasName() bool {
	return nonBlank(p.LastName) || nonBlank(p.FirstName)
}

// StringPtr returns nil for blank input and a pointer to the trimmed text otherwise.
func StringPtr(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// IntPtr returns a pointer to a copy of v.
func IntPtr(v int) *int {
	return &v
}

// Deref returns the pointed-to string or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonBlank(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
