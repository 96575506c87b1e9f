package taxconfig

import "errors"

var (
	ErrTaxConfigNotFound      = errors.New("tax configuration not found")
	ErrActiveTaxConfigExists  = errors.New("an active tax configuration already exists for this country")
	ErrTaxConfigInUse         = errors.New("tax configuration is referenced by automation settings")
	ErrInvalidBracketOrdering = errors.New("bracket limits must be strictly increasing")
)
