package validators

import (
	"reflect"
	"unicode"

	"aguagestor/cmd/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// CNPJ validates the 14-digit tax id including its two check digits.
// Empty values pass; pair with 'required' when the field is mandatory.
func CNPJ(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if val == "" {
		return true
	}
	return utils.IsCNPJValid(utils.DigitsOnly(val))
}

// UF accepts the two-letter Brazilian state codes ("SP", "rj").
// No fixed list: the import files occasionally carry territories and typos
// that operators fix later in the UI.
func UF(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	if len(val) != 2 {
		return false
	}
	for _, ch := range val {
		if !unicode.IsLetter(ch) {
			return false
		}
	}
	return true
}

func NoDupes(fl validator.FieldLevel) bool {
	slice := fl.Field()
	if slice.Kind() != reflect.Slice {
		log.Warnf("validator 'nodupes' applied to non-slice type: %s\n", slice.Kind().String())
		return false
	}

	length := slice.Len()
	seen := make(map[any]bool, length)
	for i := 0; i < length; i++ {
		val := slice.Index(i).Interface()
		if _, exists := seen[val]; exists {
			return false
		}
		seen[val] = true
	}
	return true
}
