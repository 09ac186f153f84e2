// Package validator provides small declarative validation rules used to check
// codec configuration and customer attributes before a token is issued.
//
// A Rule bundles a Check function with translation-friendly error metadata.
// Apply evaluates rules and aggregates failures into ValidationErrors, which
// implements error and matches ErrValidationFailed through errors.Is.
//
// # Usage
//
//	err := validator.Apply(
//	    validator.ValidEmail("email", email),
//	    validator.ValidIP("remote_ip", remoteIP),
//	    validator.IsString("return_to", returnTo), // returnTo is an untyped attribute value
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, f := range verrs.Fields() {
//	        // report f
//	    }
//	}
//
// Rules are stateless and goroutine-safe.
package validator
