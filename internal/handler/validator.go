package handler

import (
    "errors"
    "fmt"
    "reflect"
    "strings"

    "github.com/go-playground/validator/v10"
)

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
    v *validator.Validate
}

// NewValidator returns a Validator that reports field names by their JSON
// tag.
func NewValidator() *Validator {
    v := validator.New(validator.WithRequiredStructEnabled())
    v.RegisterTagNameFunc(func(f reflect.StructField) string {
        name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
        if name == "-" {
            return ""
        }
        return name
    })
    return &Validator{v: v}
}

// Validate checks i and flattens validation failures into a single
// readable error.
func (cv *Validator) Validate(i any) error {
    err := cv.v.Struct(i)
    if err == nil {
        return nil
    }
    var verrs validator.ValidationErrors
    if !errors.As(err, &verrs) {
        return err
    }
    msgs := make([]string, 0, len(verrs))
    for _, fe := range verrs {
        msgs = append(msgs, describe(fe))
    }
    return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
    switch fe.Tag() {
    case "required":
        return fmt.Sprintf("%s is required", fe.Field())
    case "max":
        return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
    case "oneof":
        return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
    }
    return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
