package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDParam parses a numeric id from a path parameter.
func IDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	if raw == "" {
		return 0, fmt.Errorf("Missing %s", name)
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		return 0, fmt.Errorf("Invalid %s", name)
	}

	return uint(id), nil
}
