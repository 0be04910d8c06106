package utils

import "github.com/gin-gonic/gin"

// Failure is the body of every unsuccessful response. Exactly one of Error or
// Message is set: Error for lookups, validation and auth, Message for refused
// actions the caller may retry differently.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, body interface{}) {
	ctx.JSON(status, body)
}

// Success returns a 200 response carrying data as the body.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, 200, data)
}

// Created returns a 201 response carrying data as the body.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, 201, data)
}

// Error writes {"success": false, "error": message} and aborts the chain.
func Error(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, Failure{Error: message})
}

// Reject writes {"success": false, "message": message} and aborts the chain.
func Reject(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, Failure{Message: message})
}
