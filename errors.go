package collectionview

import (
	"errors"
	"fmt"
)

var (
	ErrNoLayout               = errors.New("no layout assigned")
	ErrNoDataSource           = errors.New("no data source assigned")
	ErrNilElement             = errors.New("factory returned no element")
	ErrUnregisteredIdentifier = errors.New("unregistered reuse identifier")
	ErrInvalidContentSize     = errors.New("layout produced an invalid content size")
)

// ConfigurationError reports a setup mistake that would desynchronize the
// recycling index from the data model. It is never retried.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("collectionview: %s: %v", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func configError(op string, err error) error {
	return &ConfigurationError{Op: op, Err: err}
}
