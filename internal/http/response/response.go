// Package response содержит единый JSON-конверт ответов прокси.
package response

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator"
)

// Response стандартный ответ прокси: {success, data|message, error}.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"invalid request body"`
	Error   string `json:"error,omitempty" example:"upstream error"`
}

// OK возвращает успешный ответ с данными.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Error возвращает ответ с ошибкой.
func Error(msg string) Response {
	return Response{Success: false, Message: msg}
}

// ValidationError собирает ошибки валидатора в одно сообщение.
func ValidationError(errs validator.ValidationErrors) Response {
	var msgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "url":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid URL", err.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}
	return Response{
		Success: false,
		Message: strings.Join(msgs, ", "),
	}
}

// OKWithMessage успешный ответ с сообщением и данными.
func OKWithMessage(msg string, data any) Response {
	return Response{Success: true, Message: msg, Data: data}
}
