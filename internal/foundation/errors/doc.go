// Package errors provides the classified error primitives used across hakkan.
//
// Every user-visible failure is a ClassifiedError carrying a category
// (config, content, duplicate, filesystem, template, build, internal), a
// severity and a small context map (usually the offending file or config
// key). The CLI adapter turns the category into an exit code.
//
// Example usage:
//
//	err := errors.MalformedContentError("date header does not match YYYY-MM-DD HH:MM:SS").
//		WithContext("file", path).
//		WithCause(parseErr).
//		Build()
package errors
