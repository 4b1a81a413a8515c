// Package validate wraps go-playground/validator with English messages keyed
// by JSON field name.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/hilthontt/powersite/internal/domain"
)

type Validator struct {
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
}

var defaultValidator = &Validator{}

// Default returns the process-wide validator.
func Default() *Validator {
	return defaultValidator
}

// Struct validates obj and converts failures into a *domain.ValidationError.
func (v *Validator) Struct(obj any) error {
	v.lazyinit()

	err := v.validate.Struct(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	out := domain.NewValidationError()
	for _, fe := range validationErrs {
		out.Add(fieldPath(fe), fe.Translate(v.translator))
	}
	return out
}

func (v *Validator) Engine() *validator.Validate {
	v.lazyinit()
	return v.validate
}

func (v *Validator) lazyinit() {
	v.once.Do(func() {
		v.validate = validator.New(validator.WithRequiredStructEnabled())

		v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		v.validate.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(domain.Date); ok {
				return d.Time
			}
			return nil
		}, domain.Date{})

		english := en.New()
		uni := ut.New(english, english)
		v.translator, _ = uni.GetTranslator("en")

		_ = en_translations.RegisterDefaultTranslations(v.validate, v.translator)

		v.registerCustomTranslations()
	})
}

func (v *Validator) registerCustomTranslations() {
	v.register("required", "This field is required.", false)
	v.register("max", "Ensure this field has no more than {0} characters.", true)
	v.register("min", "Ensure this field has at least {0} characters.", true)
	v.register("len", "Ensure this field has exactly {0} characters.", true)
	v.register("email", "Enter a valid email address.", false)
	v.register("url", "Enter a valid URL.", false)
	v.register("numeric", "A valid number is required.", false)
	v.register("gte", "Ensure this value is greater than or equal to {0}.", true)
	v.register("oneof", "Select one of [{0}].", true)
}

func (v *Validator) register(tag, text string, withParam bool) {
	_ = v.validate.RegisterTranslation(tag, v.translator, func(t ut.Translator) error {
		return t.Add(tag, text, true)
	}, func(t ut.Translator, fe validator.FieldError) string {
		if withParam {
			msg, _ := t.T(tag, fe.Param())
			return msg
		}
		msg, _ := t.T(tag)
		return msg
	})
}

// fieldPath strips the top-level struct name: "Tender.title" -> "title".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}
