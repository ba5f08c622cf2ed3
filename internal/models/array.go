package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Int64Array maps a Postgres bigint[] column onto a Go slice.
type Int64Array []int64

// Value encodes the slice as a Postgres array literal.
func (a Int64Array) Value() (driver.Value, error) {
	if a == nil {
		return "{}", nil
	}
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "{" + strings.Join(parts, ",") + "}", nil
}

// Scan decodes a Postgres array literal into the slice.
func (a *Int64Array) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*a = nil
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Int64Array", src)
	}

	s = strings.Trim(s, "{}")
	if s == "" {
		*a = Int64Array{}
		return nil
	}

	parts := strings.Split(s, ",")
	out := make(Int64Array, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid bigint[] element %q: %w", p, err)
		}
		out = append(out, n)
	}
	*a = out
	return nil
}

// Contains reports set membership.
func (a Int64Array) Contains(id int64) bool {
	for _, v := range a {
		if v == id {
			return true
		}
	}
	return false
}
