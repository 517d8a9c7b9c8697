package registry

import (
	"fmt"
	"strings"
)

// ConfigurationError means the merged configuration failed a precondition.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "registry: configuration error: " + e.Reason
}

// InitializationError means a service client could not be constructed.
type InitializationError struct {
	Service string
	Err     error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("registry: failed to initialize %s client: %v", e.Service, e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// NotInitializedError is returned by Client before Initialize has succeeded.
type NotInitializedError struct{}

func (e *NotInitializedError) Error() string {
	return "registry: not initialized; call Initialize with a Config carrying an APIKey " +
		`(e.g. registry.New().Initialize(registry.Config{APIKey: "your-api-key"}, registry.Production)) ` +
		"before using any service"
}

// UnknownServiceError is returned by Client for a name outside the registry.
type UnknownServiceError struct {
	Name      string
	Available []string
}

func (e *UnknownServiceError) Error() string {
	return fmt.Sprintf("registry: service %q does not exist; available services are: %s",
		e.Name, strings.Join(e.Available, ", "))
}
