package api

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// TableData is the decoded content of a cataloged table. Columns holds one
// slice per column, trimmed to that column's row count, with NaN cells
// rendered as JSON null.
type TableData struct {
	Name    string          `json:"name"`
	FileID  int             `json:"file_id"`
	Headers []string        `json:"headers"`
	Dtypes  []string        `json:"dtypes"`
	Rows    []int           `json:"rows"`
	Columns [][]interface{} `json:"columns"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // empty disables X-API-Key authentication
}
