package validation

import (
	"fmt"

	errors "github.com/mmwale/expense-tracker/internal"
	"github.com/mmwale/expense-tracker/internal/core/calendar"
	"github.com/mmwale/expense-tracker/internal/core/money"
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

// Field registers a value to check. The returned pointer is only valid until
// the next call to Field.
func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	name := fv.FieldName
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		missing := false
		switch v := value.(type) {
		case string:
			missing = v == ""
		case *string:
			missing = v == nil || *v == ""
		case money.Amount:
			missing = v.IsEmpty()
		case nil:
			missing = true
		}
		if missing {
			return errors.NewValidationFieldError(name, fmt.Sprintf("%s is required", name), errors.ErrCodeRequiredField)
		}
		return nil
	})
	return fv
}

// Amount requires a non-negative decimal when a value is present.
func (fv *FieldValidator) Amount() *FieldValidator {
	name := fv.FieldName
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		var a money.Amount
		switch v := value.(type) {
		case money.Amount:
			a = v
		case string:
			a = money.FromString(v)
		default:
			return nil
		}
		if a.IsEmpty() || a.Valid() {
			return nil
		}
		return errors.NewValidationFieldError(name, fmt.Sprintf("%s must be a non-negative number", name), errors.ErrCodeInvalidAmount)
	})
	return fv
}

// Date requires an ISO calendar date when a value is present.
func (fv *FieldValidator) Date() *FieldValidator {
	name := fv.FieldName
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		if _, err := calendar.ParseDay(v); err != nil {
			return errors.NewValidationFieldError(name, fmt.Sprintf("%s must be a date in YYYY-MM-DD form", name), errors.ErrCodeInvalidDate)
		}
		return nil
	})
	return fv
}

// NotBefore requires the field's date to be on or after other. Either side
// being empty or unparseable is left to the Date check.
func (fv *FieldValidator) NotBefore(otherName, other string) *FieldValidator {
	name := fv.FieldName
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" || other == "" {
			return nil
		}
		end, err := calendar.Parse(v)
		if err != nil {
			return nil
		}
		start, err := calendar.Parse(other)
		if err != nil {
			return nil
		}
		if end.Before(start) {
			return errors.NewValidationFieldError(name, fmt.Sprintf("%s cannot be before %s", name, otherName), errors.ErrCodeInvalidDateRange)
		}
		return nil
	})
	return fv
}

// OneOf requires the value to be in allowed when present.
func (fv *FieldValidator) OneOf(allowed []string) *FieldValidator {
	name := fv.FieldName
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		for _, a := range allowed {
			if a == v {
				return nil
			}
		}
		return errors.NewValidationFieldError(name, fmt.Sprintf("%s %q is not a known value", name, v), errors.ErrCodeUnknownReference)
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			appErr := validator(field.Value)
			if appErr == nil {
				continue
			}
			if details, ok := appErr.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: appErr.Message,
				Code:    string(appErr.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

// ExpenseInput is the form data the view layer collects for a new expense.
type ExpenseInput struct {
	Subject  string
	Employee string
	Team     string
	Amount   string
	Date     string
	Category string
}

func ValidateExpenseInput(in ExpenseInput, categories []string) *errors.AppError {
	validator := NewValidator()
	validator.Field("subject", in.Subject).Required()
	validator.Field("employee", in.Employee).Required()
	validator.Field("team", in.Team).Required()
	validator.Field("amount", in.Amount).Amount()
	validator.Field("date", in.Date).Date()
	validator.Field("category", in.Category).OneOf(categories)
	return validator.Validate()
}

// TripInput is the form data the view layer collects for a new trip.
type TripInput struct {
	Destination string
	Purpose     string
	Traveler    string
	Team        string
	StartDate   string
	EndDate     string
	Budget      string
}

func ValidateTripInput(in TripInput) *errors.AppError {
	validator := NewValidator()
	validator.Field("destination", in.Destination).Required()
	validator.Field("purpose", in.Purpose).Required()
	validator.Field("traveler", in.Traveler).Required()
	validator.Field("team", in.Team).Required()
	validator.Field("start_date", in.StartDate).Required().Date()
	validator.Field("end_date", in.EndDate).Required().Date().NotBefore("start_date", in.StartDate)
	validator.Field("budget", in.Budget).Amount()
	return validator.Validate()
}
