package tutor

import "github.com/heartmarshall/flashcard-tutor/internal/domain"

// ExplainInput holds the card question to explain.
type ExplainInput struct {
	Front string
}

// Validate checks all fields and collects all errors.
func (i ExplainInput) Validate() error {
	if i.Front == "" {
		return domain.NewValidationError("front", "required")
	}
	return nil
}

// GradeInput holds a question, its correct answer and the user's answer.
// UserAnswer may be empty.
type GradeInput struct {
	Front      string
	Correct    string
	UserAnswer string
}

// Validate checks all fields and collects all errors.
func (i GradeInput) Validate() error {
	var errs []domain.FieldError

	if i.Front == "" {
		errs = append(errs, domain.FieldError{Field: "front", Message: "required"})
	}
	if i.Correct == "" {
		errs = append(errs, domain.FieldError{Field: "correct", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
