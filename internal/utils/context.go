package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/opsdash-dev/opsdash/internal/middleware"
	"github.com/opsdash-dev/opsdash/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}
