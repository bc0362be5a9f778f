package profile

import (
	"errors"
	"fmt"
)

// Error categories. Every contract violation wraps exactly one of them.
var (
	// ErrConfig marks a device template or image that must be fixed before build.
	ErrConfig = errors.New("profile: configuration error")
	// ErrFatal marks a structurally broken descriptor; initialization must abort.
	ErrFatal = errors.New("profile: fatal initialization error")
)

// Specific causes, wrapped together with a category.
var (
	ErrAttributeCount     = errors.New("attribute count does not match attribute list")
	ErrDuplicateAttribute = errors.New("duplicate attribute id")
	ErrUnknownAttribute   = errors.New("attribute not defined by cluster")
	ErrMissingAttribute   = errors.New("required attribute missing")
	ErrAttributeList      = errors.New("attribute list does not fit manifest slot")
	ErrDuplicateCluster   = errors.New("duplicate cluster")
	ErrClusterCount       = errors.New("cluster count mismatch")
	ErrClusterMismatch    = errors.New("cluster ids disagree between cluster array and simple descriptor")
	ErrDescriptorMismatch = errors.New("endpoint and simple descriptor disagree")
	ErrDuplicateEndpoint  = errors.New("duplicate endpoint")
	ErrEndpointRange      = errors.New("endpoint out of range")
	ErrCapacity           = errors.New("context capacity does not match declared count")
	ErrManifest           = errors.New("invalid cluster manifest")
	ErrNilReference       = errors.New("nil reference")
	ErrInvalidRole        = errors.New("invalid cluster role")
)

// Runtime lookup and slot table errors.
var (
	ErrNoEndpoint   = errors.New("profile: no such endpoint")
	ErrNoCluster    = errors.New("profile: no such cluster")
	ErrNoAttribute  = errors.New("profile: no such attribute")
	ErrContextFull  = errors.New("profile: context table full")
	ErrSlotNotFound = errors.New("profile: context slot not found")
)

func configError(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrConfig, cause, fmt.Sprintf(format, args...))
}

func fatalError(cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", ErrFatal, cause, fmt.Sprintf(format, args...))
}

// IsFatal reports whether err contains a fatal violation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrFatal)
}

// IsConfig reports whether err contains a configuration violation.
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}
