package db

import (
	"database/sql"
	"fmt"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/inventory"
)

// InsertSnapshot stores one run's inventory in a single transaction. The
// snapshot tables mirror the relations of the rendered report plus the OU
// path map.
func InsertSnapshot(db *sql.DB, snap *inventory.Snapshot, ouPaths map[string]string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	accountStmt, err := tx.Prepare("INSERT OR IGNORE INTO account (id, name, email, status, joined_method, joined_at) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer accountStmt.Close()
	for _, a := range snap.Accounts {
		if _, err := accountStmt.Exec(a.ID, a.Name, a.Email, a.Status, a.JoinedMethod, a.JoinedAt.UTC().Format("2006-01-02T15:04:05Z")); err != nil {
			return fmt.Errorf("insert account %s: %w", a.ID, err)
		}
	}

	ouStmt, err := tx.Prepare("INSERT OR IGNORE INTO org_unit (id, path) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer ouStmt.Close()
	for id, path := range ouPaths {
		if _, err := ouStmt.Exec(id, path); err != nil {
			return fmt.Errorf("insert org unit %s: %w", id, err)
		}
	}

	userStmt, err := tx.Prepare("INSERT OR IGNORE INTO user (id, display_name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer userStmt.Close()
	for _, u := range snap.Users {
		if _, err := userStmt.Exec(u.ID, u.DisplayName); err != nil {
			return fmt.Errorf("insert user %s: %w", u.ID, err)
		}
	}

	groupStmt, err := tx.Prepare("INSERT OR IGNORE INTO identity_group (id, display_name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer groupStmt.Close()
	for _, g := range snap.Groups {
		if _, err := groupStmt.Exec(g.ID, g.DisplayName); err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
	}

	psStmt, err := tx.Prepare("INSERT OR IGNORE INTO permission_set (arn, name, description) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer psStmt.Close()
	for _, ps := range snap.PermissionSets {
		if _, err := psStmt.Exec(ps.ARN, ps.Name, ps.Description); err != nil {
			return fmt.Errorf("insert permission set %s: %w", ps.ARN, err)
		}
	}

	memberStmt, err := tx.Prepare("INSERT INTO group_membership (group_name, user_name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer memberStmt.Close()
	for _, m := range snap.Memberships {
		if _, err := memberStmt.Exec(m.GroupName, m.UserName); err != nil {
			return fmt.Errorf("insert membership %s/%s: %w", m.GroupName, m.UserName, err)
		}
	}

	assignStmt, err := tx.Prepare("INSERT INTO account_assignment (account_name, principal_type, principal_name, permission_set_name) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer assignStmt.Close()
	for _, a := range snap.Assignments {
		if _, err := assignStmt.Exec(a.AccountName, a.PrincipalType, a.PrincipalName, a.PermissionSetName); err != nil {
			return fmt.Errorf("insert assignment %s/%s: %w", a.AccountName, a.PrincipalName, err)
		}
	}

	return tx.Commit()
}
