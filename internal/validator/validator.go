// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerRegex matches exchange ticker symbols as Yahoo Finance accepts them:
// letters, digits, and the separators used by suffixed and paired symbols
// (BRK.B, BTC-USD, ^GSPC, EURUSD=X).
var tickerRegex = regexp.MustCompile(`^[\^]?[A-Za-z0-9][A-Za-z0-9.\-=]{0,19}$`)

// validateTicker checks that a string looks like a ticker symbol.
func validateTicker(fl validator.FieldLevel) bool {
	return tickerRegex.MatchString(fl.Field().String())
}

// Register installs the custom validators into Gin's binding engine.
// Call once at startup before handling requests.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validateTicker)
	}
}
