package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Role is the closed set of account roles. Raw role strings coming from
// storage or request bodies are resolved once through ParseRole.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
)

var AllRoles = []Role{RoleStudent, RoleInstructor, RoleAdmin}

// ParseRole matches case-insensitively. Legacy free-text values such as
// "Course Instructor" are resolved by substring, admin first. Anything
// unrecognised is a student.
func ParseRole(raw string) Role {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch Role(s) {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return Role(s)
	}
	switch {
	case strings.Contains(s, "admin"):
		return RoleAdmin
	case strings.Contains(s, "instructor"), strings.Contains(s, "teacher"):
		return RoleInstructor
	default:
		return RoleStudent
	}
}

// ValidRole reports whether raw names one of the roles exactly (ignoring case).
func ValidRole(raw string) bool {
	s := Role(strings.ToLower(strings.TrimSpace(raw)))
	for _, r := range AllRoles {
		if r == s {
			return true
		}
	}
	return false
}

func (r Role) IsStaff() bool {
	return r == RoleInstructor || r == RoleAdmin
}

func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*r = RoleStudent
	case string:
		*r = ParseRole(v)
	case []byte:
		*r = ParseRole(string(v))
	default:
		return fmt.Errorf("models: cannot scan %T into Role", src)
	}
	return nil
}
