package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrNoRows       = errors.New("db: no rows in result set")
	ErrDuplicate    = errors.New("db: duplicate key")
	ErrKeyNotFound  = errors.New("db: key not found")
	ErrInvalidQuery = errors.New("db: invalid query")
)

// Op constants name the operation for error context.
const (
	OpQuery    = "QUERY"
	OpQueryRow = "QUERY_ROW"
	OpExec     = "EXEC"
	OpBegin    = "BEGIN"
	OpCommit   = "COMMIT"
	OpScan     = "SCAN"
	OpGet      = "GET"
	OpSet      = "SET"
	OpDel      = "DEL"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
