package report

import (
	"io"
	"sort"
	"strings"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/inventory"
)

// accountsCSVHeader is the fixed column set of the accounts export.
var accountsCSVHeader = []string{"Name", "Id", "OU Path", "OU ID", "Email", "Status", "JoinedMethod", "JoinedTimestamp"}

const joinedTimestampLayout = "2006/01/02 15:04:05"

// WriteAccountsCSV writes the accounts-with-OU-path relation as CSV, sorted
// by (Name, OU Path). Every field is quoted unconditionally, which
// encoding/csv cannot do, so records are emitted directly.
func WriteAccountsCSV(w io.Writer, rows []inventory.AccountRow) error {
	sorted := make([]inventory.AccountRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].OUPath < sorted[j].OUPath
	})

	if err := writeQuotedRecord(w, accountsCSVHeader); err != nil {
		return err
	}
	for _, r := range sorted {
		record := []string{
			r.Name, r.ID,
			r.OUPath, r.OUID,
			r.Email, r.Status,
			r.JoinedMethod,
			r.JoinedAt.Format(joinedTimestampLayout),
		}
		if err := writeQuotedRecord(w, record); err != nil {
			return err
		}
	}
	return nil
}

func writeQuotedRecord(w io.Writer, record []string) error {
	quoted := make([]string, len(record))
	for i, f := range record {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	_, err := io.WriteString(w, strings.Join(quoted, ",")+"\n")
	return err
}
