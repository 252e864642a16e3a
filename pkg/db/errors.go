package db

import "strings"

// IsUniqueViolation reports whether the error references a Postgres unique
// constraint. With a constraintName the helper looks for that constraint in
// the error text.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
