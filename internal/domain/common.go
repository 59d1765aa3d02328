package domain

import "database/sql"

func stringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}

	return sql.NullString{Valid: true, String: s}
}
