package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance indicates the side on which an account type ordinarily accumulates value.
type NormalBalance string

const (
	DebitBalance  NormalBalance = "DEBIT"
	CreditBalance NormalBalance = "CREDIT"
)

// NormalBalance returns the normal balance side for the account type.
// Asset and Expense accounts grow on the debit side; the rest on the credit side.
func (t AccountType) NormalBalance() NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitBalance
	default:
		return CreditBalance
	}
}

// IsValid reports whether t is one of the five recognised account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a node in the chart of accounts.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary key (UUID)
	Code        string      `json:"code"`        // Unique human-facing code, e.g. "1120"
	Name        string      `json:"name"`        // User-defined name
	AccountType AccountType `json:"accountType"` // ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE
	Category    string      `json:"category"`    // Optional sub-grouping, e.g. "Current Asset"
	ParentCode  *string     `json:"parentCode"`  // Nullable self-reference for rollup trees
	IsActive    bool        `json:"isActive"`    // Hidden from selection lists when false
	IsControl   bool        `json:"isControl"`   // Postable, but flagged for UI warnings
	Description string      `json:"description"` // Nullable user description
	AuditFields
}

// ChildrenIndex maps an account code to the codes of its direct children.
// It is built per report run and must be rebuilt after any tree mutation.
type ChildrenIndex map[string][]string
