package orders

import "errors"

// Client-input errors surface verbatim and are never retried; state errors are
// safe for the caller to ignore.
var (
	ErrInvalidReferenceFormat = errors.New("invalid payment reference format")
	ErrDuplicateReference     = errors.New("payment reference already used")
	ErrUnknownPack            = errors.New("unknown or inactive pack")
	ErrPriceMismatch          = errors.New("claimed price does not match catalog price")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderAlreadyFinalized  = errors.New("order already finalized")
	ErrUnknownAction          = errors.New("unknown action")
)
