package controllers

import (
	"fmt"

	"healio/internal/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request bodies.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("mealtype", func(fl validator.FieldLevel) bool {
		return models.MealType(fl.Field().String()).Valid()
	})
}
