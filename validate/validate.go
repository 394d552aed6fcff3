package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
)

var validate *validator.Validate

var translator ut.Translator

func init() {

	validate = validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	translator, _ = ut.New(en.New(), en.New()).GetTranslator("en")
	en_translations.RegisterDefaultTranslations(validate, translator)
}

// FieldError is the first rule a value broke.
type FieldError struct {
	Field string
	Tag   string
	msg   string
}

func (e *FieldError) Error() string { return e.msg }

// Check validates val against its struct tags and reports one failing field.
// Missing fields are reported before malformed ones, otherwise the first
// failure in declaration order wins.
func Check(val any) error {
	if err := validate.Struct(val); err != nil {

		verrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}

		if len(verrors) < 1 {
			return nil
		}

		fe := verrors[0]
		for _, v := range verrors {
			if v.Tag() == "required" {
				fe = v
				break
			}
		}
		return &FieldError{Field: fe.Field(), Tag: fe.Tag(), msg: fe.Translate(translator)}
	}

	return nil
}

// FailedOn reports whether err is a FieldError raised by the given rule.
func FailedOn(err error, tag string) bool {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Tag == tag
	}
	return false
}

func GenerateID() string {
	return uuid.NewString()
}

func CheckID(id string) error {
	u, err := uuid.Parse(id)
	if err != nil || u.Version() != 4 {
		return errors.New("ID is not in its proper form")
	}
	return nil
}
