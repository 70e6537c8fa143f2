package simulation

import "errors"

var (
	// ErrBucketNotFound is returned when no bucket has the requested id.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrBucketExists is returned when creating a bucket whose name is taken.
	ErrBucketExists = errors.New("bucket with name already exists")

	// ErrBucketNameRequired is returned when creating a bucket without a name.
	ErrBucketNameRequired = errors.New("bucket name is required")

	// ErrOrgMismatch is returned when a request names an organization other
	// than the fixed one.
	ErrOrgMismatch = errors.New("organization not found")

	// ErrInvalidBucketID is returned for ids that do not have the id length.
	ErrInvalidBucketID = errors.New("invalid id")

	// ErrInvalidStatusCode is returned when a directive carries an x-code
	// that is not a usable HTTP status.
	ErrInvalidStatusCode = errors.New("invalid status code")
)
