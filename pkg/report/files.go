package report

import (
	"fmt"
	"path/filepath"
	"time"
)

// TimestampLayout qualifies output filenames so successive runs never
// collide.
const TimestampLayout = "2006-01-02_15-04-05"

func AccountsCSVPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("accounts_%s.csv", t.Format(TimestampLayout)))
}

func InventoryReportPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("inventory_%s.md", t.Format(TimestampLayout)))
}
