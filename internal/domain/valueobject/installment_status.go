package valueobject

import "fmt"

// InstallmentStatus is the lifecycle state of a single installment payment.
type InstallmentStatus string

const (
	InstallmentScheduled InstallmentStatus = "scheduled"
	InstallmentPaid      InstallmentStatus = "paid"
	InstallmentFailed    InstallmentStatus = "failed"
	InstallmentCancelled InstallmentStatus = "cancelled"
)

// NewInstallmentStatus parses an installment status string.
func NewInstallmentStatus(s string) (InstallmentStatus, error) {
	switch InstallmentStatus(s) {
	case InstallmentScheduled, InstallmentPaid, InstallmentFailed, InstallmentCancelled:
		return InstallmentStatus(s), nil
	default:
		return "", fmt.Errorf("invalid installment status %q", s)
	}
}

// String returns the status as a string.
func (s InstallmentStatus) String() string {
	return string(s)
}
