package messaging

import (
	"errors"
	"fmt"
	"strings"
)

// DriverNATS selects the NATS backend.
const DriverNATS = "nats"

// ErrUnknownDriver is returned for driver names the factory does not know.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions carries per-driver configuration.
type FactoryOptions struct {
	NATS NATSConfig
}

// NewFromDriver constructs the Messaging implementation named by driver.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.TrimSpace(driver) {
	case DriverNATS:
		return NewNATS(opts.NATS)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
