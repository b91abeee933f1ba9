package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterStructValidation(validateDatabaseTarget, DatabaseConfig{})
	if err := validate.RegisterTranslation("target", trans, func(ut ut.Translator) error {
		return ut.Add("target", "{0} is required for the {1} driver", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("target", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Param())
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register target translation: %w", err)
	}

	return validate, trans, nil
}

// validateDatabaseTarget reports the field that must be set for the configured driver:
// a file path for sqlite, a URL or host otherwise.
func validateDatabaseTarget(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(DatabaseConfig)
	switch cfg.Driver {
	case DriverSQLite:
		if cfg.Path == "" && cfg.URL == "" {
			sl.ReportError(cfg.Path, "path", "Path", "target", cfg.Driver)
		}
	case DriverPostgres, DriverMySQL:
		if cfg.URL == "" && cfg.Host == "" {
			sl.ReportError(cfg.Host, "host", "Host", "target", cfg.Driver)
		}
	}
}
