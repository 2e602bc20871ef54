package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/types"
)

func GetPrincipal(ctx *gin.Context) (auth.Principal, error) {
	value, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return auth.Principal{}, fmt.Errorf("User not authenticated")
	}

	principal, ok := value.(auth.Principal)

	if !ok {
		return auth.Principal{}, fmt.Errorf("Invalid user type in context")
	}

	return principal, nil
}
