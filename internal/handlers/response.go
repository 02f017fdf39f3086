package handlers

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint replies with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(data any) Response {
	return Response{Success: true, Data: data}
}

func successMessage(message string) Response {
	return Response{Success: true, Message: message}
}

func failure(message string) Response {
	return Response{Success: false, Message: message}
}

func validationFailure(err error) Response {
	return Response{Success: false, Message: "Invalid request", Data: gin.H{"details": err.Error()}}
}
