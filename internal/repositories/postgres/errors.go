package postgres

import (
	"errors"

	"github.com/lib/pq"
)

// undefinedTable is the PostgreSQL error code raised when a referenced
// table does not exist (42P01). The configuration tables are created
// lazily by migrations, so queries against them may legitimately hit
// this on a fresh deployment.
const undefinedTable = "42P01"

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == undefinedTable
}
