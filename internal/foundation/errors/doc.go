// Package errors provides the classified error primitives used across the site build.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (content_read, parse, network, filesystem, ...), a severity and
// optional structured context. The CLI adapter turns a classified error into a
// log record and a process exit code.
//
// Example usage:
//
//	err := errors.ParseError("malformed front matter").
//		WithCause(yamlErr).
//		WithContext("file", path).
//		Build()
package errors
