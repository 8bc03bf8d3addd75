package model

import "time"

type Account struct {
	ID           string
	Name         string
	Email        string
	Status       string
	JoinedMethod string
	JoinedAt     time.Time
}

type OrgUnit struct {
	ID       string
	Name     string
	ParentID string
}

type User struct {
	ID          string
	DisplayName string
}

type Group struct {
	ID          string
	DisplayName string
}

type PermissionSet struct {
	ARN         string
	Name        string
	Description string
}

// Instance identifies an IAM Identity Center instance and its backing
// identity store.
type Instance struct {
	ARN             string
	IdentityStoreID string
}

// Membership is a resolved group→user edge. UserName carries the
// placeholder form when the member no longer exists in the store.
type Membership struct {
	GroupName string
	UserName  string
}

// Assignment is a resolved account×permission-set→principal edge.
type Assignment struct {
	AccountName       string
	PrincipalType     string
	PrincipalName     string
	PermissionSetName string
}

// AssignmentRecord is the raw edge as returned by the remote listing,
// before principal resolution.
type AssignmentRecord struct {
	PrincipalType string
	PrincipalID   string
}
