package models

// Setting names read by the console.
const (
	SettingSearchLimit   = "search_limit"
	SettingMaxInTable    = "max_in_table"
	SettingLoginAttempts = "login_attempts"
	SettingRowsPerPage   = "rows_per_page"
)

// Setting is a row of the global settings table.
type Setting struct {
	Name     string  `db:"name"`
	Type     int     `db:"type"`
	ValueStr *string `db:"value_str"`
	ValueInt *int64  `db:"value_int"`
}

// GlobalSettings are the settings the list pages depend on.
type GlobalSettings struct {
	SearchLimit   int `json:"search_limit"`
	RowsPerPage   int `json:"rows_per_page"`
	MaxInTable    int `json:"max_in_table"`
	LoginAttempts int `json:"login_attempts"`
}
