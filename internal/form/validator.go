package form

import (
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/store-console/internal/errors"
)

// ValidateStruct runs every rule and reports all failures at once as a
// validation failure.
func ValidateStruct(structField interface{}, rules ...*validation.FieldRules) error {
	var msgs []string

	for _, rule := range rules {
		if err := validation.ValidateStruct(structField, rule); err != nil {
			msgs = append(msgs, formatErrMsg(err.Error()))
		}
	}
	if len(msgs) == 0 {
		return nil
	}

	return &gerr.Error{
		Kind:   gerr.KindValidation,
		Op:     "validate form",
		Detail: strings.Join(msgs, " "),
	}
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}
