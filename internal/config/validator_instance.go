package config

import (
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	registryPathPattern = regexp.MustCompile(`^[^\\/]+(\\[^\\/]+)*$`)
	serviceNamePattern  = regexp.MustCompile(`^[^\\/]{1,256}$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		_ = v.RegisterValidation("registry_path", func(fl validator.FieldLevel) bool {
			return registryPathPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("win_service_name", func(fl validator.FieldLevel) bool {
			name := fl.Field().String()
			return strings.TrimSpace(name) != "" && serviceNamePattern.MatchString(name)
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns a configured validator instance for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
