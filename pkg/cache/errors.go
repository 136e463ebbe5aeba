package cache

import "fmt"

// Local repository errors.
var (
	// ErrInvalidBom is returned when an installed BOM cannot be parsed.
	ErrInvalidBom = fmt.Errorf("failed to parse installed bom")

	// ErrBomNotInstalled is returned when a BOM version is not present locally.
	ErrBomNotInstalled = fmt.Errorf("bom is not installed")
)
