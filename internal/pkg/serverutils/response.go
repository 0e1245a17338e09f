package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{Code: 200, Data: data}
}

func ErrorResponse(code int, message string) APIResponse {
	return APIResponse{Code: code, Message: message}
}

// ErrorHandlerMiddleware converts panics inside handlers into a 500 reply
// instead of dropping the connection.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %v", r)
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "internal server error"))
			}
		}()
		return ctx.Next()
	}
}
