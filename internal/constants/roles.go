package constants

import (
	"database/sql/driver"
	"fmt"
)

// AppRole mirrors the Postgres ENUM 'app_role'
type AppRole string

const (
	RoleMember AppRole = "member"
	RoleLeader AppRole = "leader"
	RoleAdmin  AppRole = "admin"
)

// Stringer ­– convenient for fmt / logs
func (r AppRole) String() string { return string(r) }

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (r *AppRole) Scan(src interface{}) error {
	if src == nil {
		*r = ""
		return nil
	}
	switch v := src.(type) {
	case string:
		*r = AppRole(v)
	case []byte:
		*r = AppRole(v)
	default:
		return fmt.Errorf("AppRole: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (r AppRole) Value() (driver.Value, error) { return string(r), nil }
