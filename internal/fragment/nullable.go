package fragment

import "fmt"

// NullableIDCase casts column to STRING, turning empty strings into NULL.
// The result is aliased back to the column name.
func NullableIDCase(column string) string {
	return NullableIDCaseAs(column, "")
}

// NullableIDCaseAs is NullableIDCase with an explicit alias.
// An empty alias falls back to the column name.
func NullableIDCaseAs(column, alias string) string {
	if alias == "" {
		alias = column
	}
	return fmt.Sprintf("CASE WHEN NULLIF(%s, '') IS NOT NULL THEN CAST(%s AS STRING) ELSE NULL END AS %s", column, column, alias)
}
