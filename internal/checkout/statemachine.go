package checkout

import "github.com/estrie-eats/checkout-backend/pkg/errors"

// Step is the shopper's position in the checkout flow.
type Step string

const (
	StepInfo   Step = "info"
	StepReview Step = "review"
)

// Continue advances from the info step to the review step behind the
// lightweight gate. Full validation is deliberately deferred to submit so the
// shopper can see every error on the review screen instead of being blocked
// silently.
func Continue(current Step, form CustomerFormData) (Step, error) {
	if current != StepInfo {
		return current, errors.New(errors.CodeConflict, "can only continue from the info step")
	}
	if !QuickGate(form) {
		return current, errors.New(errors.CodeValidation, "fill in your contact details to continue")
	}
	return StepReview, nil
}

// Back returns to the info step unconditionally.
func Back(current Step) Step {
	return StepInfo
}

// GateSubmit checks that a submission is allowed from the current step and
// that the form passes full validation. On success the caller proceeds to
// the submission coordinator; on failure it stays on the review screen.
func GateSubmit(current Step, form CustomerFormData, zone ZoneDecision) (ValidationErrors, error) {
	if current != StepReview {
		return nil, errors.New(errors.CodeConflict, "review your order before submitting")
	}
	if errs := Validate(form, zone); len(errs) > 0 {
		return errs, errors.New(errors.CodeValidation, "please fix the highlighted fields").WithDetails(errs)
	}
	return nil, nil
}
