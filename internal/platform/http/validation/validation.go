// Package validation registers custom binding rules on gin's validator.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once    sync.Once
	initErr error
)

// Register adds the "notblank" rule to gin's default validator.
// 何度呼んでも登録は一度だけ行われます。
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = errors.New("gin binding engine is not go-playground/validator")
			return
		}
		initErr = v.RegisterValidation("notblank", NotBlank)
	})
	return initErr
}

// NotBlank fails for strings made only of whitespace.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
