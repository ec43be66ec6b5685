// Package errors provides the classified error type used across apilinks.
//
// Errors carry a category (config, filesystem, markdown, ...), a severity and a
// small map of structured context. The CLI adapter turns a category into a
// process exit code and a user-facing message.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "read markdown file").
//		WithContext("file", path).
//		Build()
package errors
