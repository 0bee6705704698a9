package rekuest

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/laddertrack/backend/internal/pkg/lterr"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})
	return validate
}

func nullStringValuer(field reflect.Value) interface{} {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}
	return nil
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := []*ErrorResponse{}

	for i := 0; i < len(ve); i++ {
		fe := ve[i]

		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Error(),
		})
	}

	return trans
}

func validateStruct(s any) []*ErrorResponse {
	err := Validate.Struct(s)
	if err != nil {
		errs, ok := err.(validator.ValidationErrors)
		if !ok {
			panic(err)
		}
		return translate(errs)
	}
	return nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return lterr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	if err := validateStruct(dest); err != nil {
		return lterr.NewInvalidViolations(err)
	}

	return nil
}
