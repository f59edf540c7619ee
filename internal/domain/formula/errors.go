package formula

import "errors"

var (
	ErrRuleNotFound      = errors.New("formula rule not found")
	ErrRuleNameExists    = errors.New("formula rule name already exists")
	ErrInvalidRuleType   = errors.New("invalid rule type")
	ErrInvalidRuleBasis  = errors.New("invalid rule amount basis")
	ErrEngineUnavailable = errors.New("formula engine unavailable")
)
