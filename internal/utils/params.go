package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PathID reads a uuid path parameter. label names the entity in error
// messages, for example "Project".
func PathID(ctx *gin.Context, name, label string) (string, error) {
	value := strings.TrimSpace(ctx.Param(name))

	if value == "" {
		return "", errors.New(label + " ID not found")
	}

	id, err := uuid.Parse(value)

	if err != nil {
		return "", errors.New("Invalid " + label + " ID")
	}

	return id.String(), nil
}
