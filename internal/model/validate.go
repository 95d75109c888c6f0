package model

import "github.com/go-playground/validator/v10"

// Shared validator instance; struct tag metadata is cached per type.
var validate = validator.New()
