package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal struct validator driven by `validate:"..."` tags. Supports:
// - required
// - phone8 (starts with '8', 8-13 digits total)
// - nameok (letters, numbers, space, hyphen, apostrophe, 1-100 chars)
// - pwdmin (min length 6)
// - eqfield=OtherField

var (
	rePhone8 = regexp.MustCompile(`^8[0-9]{7,12}$`)
	reNameOK = regexp.MustCompile(`^[A-Za-z0-9 \-']{1,100}$`)
)

// ValidateStruct inspects validate tags and returns the first violation.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		fv := v.Field(i)
		var sval string
		if fv.IsValid() && fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, p := range strings.Split(tag, ",") {
			p = strings.TrimSpace(p)
			switch {
			case p == "required":
				if sval == "" {
					return errors.New(field.Name + " is required")
				}
			case p == "phone8":
				if sval != "" && !rePhone8.MatchString(sval) {
					return errors.New(field.Name + " must be a valid phone number")
				}
			case p == "nameok":
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			case p == "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case strings.HasPrefix(p, "eqfield="):
				other := strings.TrimPrefix(p, "eqfield=")
				ov := v.FieldByName(other)
				if !ov.IsValid() || ov.Kind() != reflect.String || ov.String() != sval {
					return errors.New(field.Name + " does not match " + other)
				}
			}
		}
	}
	return nil
}
