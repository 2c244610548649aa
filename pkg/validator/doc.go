// Package validator provides rule-based validation for request payloads.
//
// A Rule pairs a check with the error reported when the check fails. Apply
// runs all rules and collects failures into ValidationErrors, which the
// handler package renders as a 422 response with per-field messages:
//
//	func (p RejectPayload) Validate() error {
//		return validator.Apply(
//			validator.Required("reason", p.Reason),
//			validator.MaxLen("reason", p.Reason, 500),
//		)
//	}
//
// Each ValidationError carries a Key such as "validation.required" and Params so
// messages can be localised by the caller.
package validator
