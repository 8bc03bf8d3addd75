package report

import (
	"sort"
	"strings"
	"text/template"

	"github.com/hoominkani/aws-accounts-to-csv/pkg/inventory"
)

const inventoryTemplate = `# AWS IAM Identity Center Inventory

- Retrieved at: {{.RetrievedAt}}
- Executed Account: {{.AccountName}} ({{.AccountID}})

## IAM Identity Center Information

- Instance ARN: {{.InstanceARN}}
- Identity Store ID: {{.IdentityStoreID}}

## AWS Accounts

{{.Accounts}}

## Users

{{.Users}}

## Groups

{{.Groups}}

## Group Memberships

{{.GroupMemberships}}

## Permission Sets

{{.PermissionSets}}

## Assignments

{{.Assignments}}
`

var inventoryTmpl = template.Must(template.New("inventory").Parse(inventoryTemplate))

// RenderMarkdown renders the snapshot into the fixed report layout. Each
// relation is sorted by its composite key before tabulation so output is
// stable across runs regardless of remote listing order.
func RenderMarkdown(snap *inventory.Snapshot) (string, error) {
	accounts := make([][]string, 0, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accounts = append(accounts, []string{a.Name, a.ID})
	}
	sortRows(accounts, 1)

	// The User Name and Description columns are intentionally blank: the
	// directory snapshot carries only display names for users and groups.
	users := make([][]string, 0, len(snap.Users))
	for _, u := range snap.Users {
		users = append(users, []string{u.DisplayName, "", u.ID})
	}
	sortRows(users, 2)

	groups := make([][]string, 0, len(snap.Groups))
	for _, g := range snap.Groups {
		groups = append(groups, []string{g.DisplayName, "", g.ID})
	}
	sortRows(groups, 1)

	memberships := make([][]string, 0, len(snap.Memberships))
	for _, m := range snap.Memberships {
		memberships = append(memberships, []string{m.GroupName, m.UserName})
	}
	sortRows(memberships, 2)

	permissionSets := make([][]string, 0, len(snap.PermissionSets))
	for _, ps := range snap.PermissionSets {
		permissionSets = append(permissionSets, []string{ps.Name, ps.Description, ps.ARN})
	}
	sortRows(permissionSets, 1)

	assignments := make([][]string, 0, len(snap.Assignments))
	for _, a := range snap.Assignments {
		assignments = append(assignments, []string{a.AccountName, a.PrincipalType, a.PrincipalName, a.PermissionSetName})
	}
	sortRows(assignments, 3)

	var b strings.Builder
	err := inventoryTmpl.Execute(&b, map[string]string{
		"RetrievedAt":      snap.RetrievedAt.Format(TimestampLayout),
		"AccountName":      snap.ExecAccountName,
		"AccountID":        snap.ExecAccountID,
		"InstanceARN":      snap.Instance.ARN,
		"IdentityStoreID":  snap.Instance.IdentityStoreID,
		"Accounts":         markdownTable([]string{"Account Name", "Account ID"}, accounts),
		"Users":            markdownTable([]string{"Display Name", "User Name", "User ID"}, users),
		"Groups":           markdownTable([]string{"Display Name", "Description", "Group ID"}, groups),
		"GroupMemberships": markdownTable([]string{"Group Name", "User Name"}, memberships),
		"PermissionSets":   markdownTable([]string{"Permission Set Name", "Description", "Permission Set ARN"}, permissionSets),
		"Assignments":      markdownTable([]string{"Account Name", "Principal Type", "Principal Name", "Permission Set Name"}, assignments),
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// sortRows orders rows by their first keyCols columns; rows equal on the
// key keep their input order.
func sortRows(rows [][]string, keyCols int) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		for k := 0; k < keyCols; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}
