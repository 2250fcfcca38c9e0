package model

import "strings"

// LiabilityTag groups liabilities for filtering. A liability may carry
// several tags.
type LiabilityTag string

const (
	TagCreditCard      LiabilityTag = "credit_card"
	TagPersonalLoans   LiabilityTag = "personal_loans"
	TagStudentLoans    LiabilityTag = "student_loans"
	TagFamilyLoan      LiabilityTag = "family_loan"
	TagTaxes           LiabilityTag = "taxes"
	TagShortFamilyLoan LiabilityTag = "short_family_loan"
)

// AllTags lists every tag in display order.
var AllTags = []LiabilityTag{
	TagCreditCard,
	TagPersonalLoans,
	TagStudentLoans,
	TagFamilyLoan,
	TagTaxes,
	TagShortFamilyLoan,
}

var tagLabels = map[LiabilityTag]string{
	TagCreditCard:      "Credit Card",
	TagPersonalLoans:   "Personal Loans",
	TagStudentLoans:    "Student Loans",
	TagFamilyLoan:      "Family Loan",
	TagTaxes:           "Taxes",
	TagShortFamilyLoan: "Short Family Loan",
}

// Label returns the human-readable name of the tag.
func (t LiabilityTag) Label() string {
	if label, ok := tagLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseTag accepts either the identifier ("credit_card") or the label
// ("Credit Card"), case-insensitively.
func ParseTag(s string) (LiabilityTag, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	for _, tag := range AllTags {
		if string(tag) == norm {
			return tag, true
		}
	}
	return "", false
}
