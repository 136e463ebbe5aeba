package repository

import (
	"fmt"

	"github.com/glorpus-work/artifactswap/pkg/errors"
)

// Common repository errors.
var (
	// ErrTempCleanup is returned when tracked temporary files could not be removed.
	ErrTempCleanup = fmt.Errorf("failed to remove temporary files")

	// ErrMetadataUnavailable is returned when maven-metadata.xml of the BOM cannot be fetched.
	ErrMetadataUnavailable = fmt.Errorf("bom metadata unavailable")
)

// Wrap wraps an error with additional context specific to the repository package.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, "repository: "+msg)
}

// Wrapf wraps an error with additional formatted context specific to the repository package.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, "repository: "+format, args...)
}
