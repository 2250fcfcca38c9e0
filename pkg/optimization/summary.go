// Package optimization provides shared data structures for optimization results.
package optimization

import "time"

// Summary captures the result of a single optimization directive.
type Summary struct {
	Scope           string    `json:"scope" yaml:"scope"`
	TargetName      string    `json:"targetName" yaml:"targetName"`
	Field           string    `json:"field" yaml:"field"`
	Original        float64   `json:"original" yaml:"original"`
	Value           float64   `json:"value" yaml:"value"`
	TargetMonths    int       `json:"targetMonths" yaml:"targetMonths"`
	Months          int       `json:"months" yaml:"months"`
	InterestPaid    float64   `json:"interestPaid" yaml:"interestPaid"`
	DateFree        time.Time `json:"dateFree" yaml:"dateFree"`
	Iterations      int       `json:"iterations" yaml:"iterations"`
	Converged       bool      `json:"converged" yaml:"converged"`
	Notes           []string  `json:"notes,omitempty" yaml:"notes,omitempty"`
	OriginalDisplay string    `json:"originalDisplay,omitempty" yaml:"originalDisplay,omitempty"`
	ValueDisplay    string    `json:"valueDisplay,omitempty" yaml:"valueDisplay,omitempty"`
}

// Headroom returns how many months earlier than the target the debts clear.
func (s Summary) Headroom() int {
	return s.TargetMonths - s.Months
}
