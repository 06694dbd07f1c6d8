package ingest

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/gradebook/gradebook/internal/roster"
)

// ErrNotANumber is returned by ParseScore for text that is not a finite number.
var ErrNotANumber = errors.New("please enter a valid number")

var (
	validate *govalidator.Validate
	trans    ut.Translator
)

func init() {
	validate = govalidator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, trans)

	// Names become export label values, which must be valid UTF-8.
	_ = validate.RegisterValidation("utf8", func(fl govalidator.FieldLevel) bool {
		return utf8.ValidString(fl.Field().String())
	})
	_ = validate.RegisterTranslation("utf8", trans,
		func(tr ut.Translator) error {
			return tr.Add("utf8", "{0} must be valid UTF-8 text", true)
		},
		func(tr ut.Translator, fe govalidator.FieldError) string {
			msg, _ := tr.T("utf8", fe.Field())
			return msg
		},
	)
}

// ValidationError carries one human-readable message per invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range []string{"Name", "Score"} {
		if m, ok := e.Fields[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, "; ")
}

// ParseScore parses user-entered marks. Surrounding whitespace is ignored.
func ParseScore(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotANumber
	}
	return v, nil
}

// ValidateRecord checks that name is non-empty valid UTF-8 and score lies in
// [0, 100].
// It returns a *ValidationError describing every failing field.
func ValidateRecord(name string, score float64) error {
	err := validate.Struct(roster.Record{Name: strings.TrimSpace(name), Score: score})
	if err == nil {
		return nil
	}

	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("ingest: validate: %w", err)
	}
	out := &ValidationError{Fields: make(map[string]string, len(ve))}
	for _, fe := range ve {
		out.Fields[fe.Field()] = fe.Translate(trans)
	}
	return out
}
