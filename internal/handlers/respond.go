package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform API response shape
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// respond writes the standard envelope
func respond(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{Data: data, Message: message, Status: status})
}

func respondOK(c *gin.Context, data any, message string) {
	respond(c, http.StatusOK, data, message)
}

func respondCreated(c *gin.Context, data any, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respondError(c *gin.Context, status int, message string) {
	respond(c, status, nil, message)
}
