// Package validation envuelve go-playground/validator con las reglas propias
// del proyecto y traduce los errores a los mensajes que muestran los forms.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]+$`)

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// El nombre del campo en los errores es el del form, no el del struct.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	mustRegister(v, "integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.Atoi(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "notnumeric", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, r := range s {
			if r < '0' || r > '9' {
				return true
			}
		}
		return s == ""
	})
	mustRegister(v, "maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= n
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// Messages sobreescribe el mensaje por "campo.tag" (p.ej. "password1.min").
// Un %s en el mensaje recibe el parámetro de la regla.
type Messages map[string]string

// Var valida un valor suelto contra una regla de validator. Devuelve "" si pasa.
func Var(value any, rule string) string {
	err := validate.Var(value, rule)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return Message(ve[0], nil)
	}
	return err.Error()
}

// Struct valida un struct con tags `validate` y devuelve campo => mensaje,
// o nil si no hay errores. Cada campo reporta solo su primera regla fallida.
func Struct(s any, overrides Messages) (map[string]string, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		if _, seen := out[fe.Field()]; !seen {
			out[fe.Field()] = Message(fe, overrides)
		}
	}
	return out, nil
}

// CheckRule detecta reglas mal escritas; validator entra en pánico con tags
// desconocidos y eso se quiere ver al arrancar, no en un request.
func CheckRule(rule string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validation: bad rule %q: %v", rule, r)
		}
	}()
	_ = validate.Var("", rule)
	return nil
}

// Message traduce un FieldError al texto que se muestra en el form.
func Message(fe validator.FieldError, overrides Messages) string {
	if msg, ok := overrides[fe.Field()+"."+fe.Tag()]; ok {
		if strings.Contains(msg, "%s") {
			return fmt.Sprintf(msg, fe.Param())
		}
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters (it has %d).", fe.Param(), runeLen(fe.Value()))
	case "maxbytes":
		return fmt.Sprintf("Ensure this value has at most %s bytes.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "integer":
		return "Enter a whole number."
	case "oneof":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "datetime":
		return "Enter a valid date."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "notnumeric":
		return "This value is entirely numeric."
	case "eqfield":
		return fmt.Sprintf("This value must match %s.", strings.ToLower(fe.Param()))
	default:
		return "Enter a valid value."
	}
}

func runeLen(v any) int {
	s, _ := v.(string)
	return utf8.RuneCountInString(s)
}
