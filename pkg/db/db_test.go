package db

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/inventory"
	"github.com/hoominkani/aws-accounts-to-csv/pkg/model"
)

func testSnapshot() *inventory.Snapshot {
	return &inventory.Snapshot{
		RetrievedAt:     time.Now(),
		ExecAccountID:   "111",
		ExecAccountName: "management",
		Instance:        model.Instance{ARN: "arn:i", IdentityStoreID: "d-1"},
		Accounts: []model.Account{
			{ID: "111", Name: "management", Email: "m@x.com", Status: "ACTIVE", JoinedMethod: "CREATED", JoinedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
		Users:          []model.User{{ID: "u-1", DisplayName: "Alice"}},
		Groups:         []model.Group{{ID: "g-1", DisplayName: "Admins"}},
		PermissionSets: []model.PermissionSet{{ARN: "ps-1", Name: "AdminAccess", Description: "Full access"}},
		Memberships:    []model.Membership{{GroupName: "Admins", UserName: "Alice"}},
		Assignments: []model.Assignment{
			{AccountName: "management", PrincipalType: "GROUP", PrincipalName: "Admins", PermissionSetName: "AdminAccess"},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inventory.db")

	database, err := Open(dbPath)
	require.NoError(t, err)

	ouPaths := map[string]string{
		"r-1":    "root",
		"ou-sec": "root/Security",
	}
	require.NoError(t, InsertSnapshot(database, testSnapshot(), ouPaths))
	require.NoError(t, database.Close())

	t.Run("tables are queryable after reopen", func(t *testing.T) {
		database, err := Open(dbPath)
		require.NoError(t, err)
		defer database.Close()

		var count int
		require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM org_unit").Scan(&count))
		assert.Equal(t, 2, count)
		var name string
		require.NoError(t, database.QueryRow("SELECT display_name FROM user WHERE id = 'u-1'").Scan(&name))
		assert.Equal(t, "Alice", name)
	})

	t.Run("export writes one CSV per table", func(t *testing.T) {
		exportDir := filepath.Join(t.TempDir(), "export")
		require.NoError(t, ExportTables(dbPath, exportDir))

		for _, table := range []string{"account", "org_unit", "user", "identity_group", "permission_set", "group_membership", "account_assignment"} {
			_, err := os.Stat(filepath.Join(exportDir, table+".csv"))
			assert.NoError(t, err, "expected export for table %s", table)
		}

		file, err := os.Open(filepath.Join(exportDir, "account.csv"))
		require.NoError(t, err)
		defer file.Close()
		records, err := csv.NewReader(file).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, []string{"id", "name", "email", "status", "joined_method", "joined_at"}, records[0])
		assert.Equal(t, "111", records[1][0])
	})

	t.Run("repeat insert of keyed rows is ignored", func(t *testing.T) {
		database, err := Open(dbPath)
		require.NoError(t, err)
		defer database.Close()

		snap := testSnapshot()
		snap.Memberships = nil
		snap.Assignments = nil
		require.NoError(t, InsertSnapshot(database, snap, ouPaths))

		var count int
		require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM account").Scan(&count))
		assert.Equal(t, 1, count)
	})
}
