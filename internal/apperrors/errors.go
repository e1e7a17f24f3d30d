package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation is not valid for the entity's
// current state (e.g. collecting an already paid installment).
var ErrConflict = errors.New("state conflict")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the authenticated user's role does not permit the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnavailable indicates an external collaborator (database, mail relay)
// could not be reached within the allowed time.
var ErrUnavailable = errors.New("service unavailable")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
