// Package validation provides struct tag validation on top of the
// validator library. It is used for configuration and request structs.
//
//	type CreateJob struct {
//	    URL string `validate:"required,url"`
//	}
//	err := validation.Validate(cmd)
//
// Failures are returned as *errors.AppError with INVALID_INPUT code and
// per-field details.
package validation
