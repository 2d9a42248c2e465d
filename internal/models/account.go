package models

// AccountType mirrors domain.AccountType at the persistence boundary.
type AccountType string

// Account is the persistence-shaped representation of a chart-of-accounts node.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Name        string      `db:"name"`
	AccountType AccountType `db:"account_type"`
	Category    string      `db:"category"`
	ParentCode  *string     `db:"parent_code"`
	IsActive    bool        `db:"is_active"`
	IsControl   bool        `db:"is_control"`
	Description string      `db:"description"`
	AuditFields
}
