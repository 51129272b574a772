package session

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/quizgen/internal/quiz"
)

// GenerateInput is what the user submits from the input step.
type GenerateInput struct {
	Subject     string           `json:"subject" validate:"required"`
	Proficiency quiz.Proficiency `json:"proficiency" validate:"proficiency"`
	Credential  string           `json:"credential" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})
	_ = v.RegisterValidation("proficiency", func(fl validator.FieldLevel) bool {
		return quiz.Proficiency(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks that every input is present and the level is known.
func (in GenerateInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ie := &InputError{}
	for _, fe := range verrs {
		ie.Fields = append(ie.Fields, fe.Field())
	}
	return ie
}
