package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile      = "file_path"
	FieldCompany   = "company"
	FieldPeriod    = "period"
	FieldFormat    = "format"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldCount     = "count"
	FieldSkipped   = "skipped_rows"
	FieldBalance   = "balance"
	FieldMode      = "mode"
	FieldAddr      = "addr"
)
