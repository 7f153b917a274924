package schema

// FilterHidden removes the columns whose names are in hidden.
// It returns a new slice; the input is not modified.
func FilterHidden(columns []Column, hidden map[string]bool) []Column {
	filtered := make([]Column, 0, len(columns))
	for _, column := range columns {
		if !hidden[column.Name] {
			filtered = append(filtered, column)
		}
	}

	return filtered
}

// FilterTables removes the excluded names from tables, preserving order.
func FilterTables(tables []string, excludeTables []string) []string {
	excludeMap := make(map[string]bool)
	for _, table := range excludeTables {
		excludeMap[table] = true
	}

	filtered := make([]string, 0, len(tables))
	for _, table := range tables {
		if !excludeMap[table] {
			filtered = append(filtered, table)
		}
	}

	return filtered
}
