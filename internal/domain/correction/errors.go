package correction

import "errors"

var (
	ErrCorrectionNotFound    = errors.New("payroll correction not found")
	ErrCorrectionNotPending  = errors.New("correction is not pending")
	ErrCorrectionNotApproved = errors.New("correction is not approved")
	ErrCorrectionTerminal    = errors.New("correction is already in a terminal status")
)
