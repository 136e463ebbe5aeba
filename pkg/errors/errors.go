package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath  = fmt.Errorf("config file path cannot be empty")
	ErrConfigParse      = fmt.Errorf("failed to parse config")
	ErrConfigValidation = fmt.Errorf("invalid configuration")
	ErrConfigEncode     = fmt.Errorf("failed to encode config")
	ErrConfigDirectory  = fmt.Errorf("failed to create config directory")
	ErrConfigFileExists = fmt.Errorf("configuration file already exists")

	// Gradle errors.
	ErrPropertyNotSet      = fmt.Errorf("required gradle property is not set")
	ErrProjectsUnavailable = fmt.Errorf("unable to read gradle projects")

	// Repository errors.
	ErrBomNotFound        = fmt.Errorf("bom not found")
	ErrBomEmpty           = fmt.Errorf("bom response body was empty")
	ErrNoValidBomVersion  = fmt.Errorf("no valid bom version found")
	ErrUnexpectedStatus   = fmt.Errorf("unexpected status code")
	ErrInvalidArchive     = fmt.Errorf("downloaded file is not a valid archive")
	ErrTokenFileEmpty     = fmt.Errorf("token file is empty")
	ErrMavenRootNotExists = fmt.Errorf("maven local repository does not exist")

	// Remover errors.
	ErrNegativeBomsToKeep = fmt.Errorf("number of boms to keep must not be negative")

	// Eventstream errors.
	ErrEventRejected = fmt.Errorf("eventstream rejected events")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
