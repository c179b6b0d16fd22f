package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opsdash-dev/opsdash/internal/auth"
	"github.com/opsdash-dev/opsdash/internal/utils"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail,omitempty"`
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	username := auth.SanitizeUsername(req.Username)

	if !auth.Authenticate(username, req.Password) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	info := auth.LookupUser(username)

	token, err := auth.GenerateJWT(info.Username, info.DisplayName)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": UserResponse{
			Username:    info.Username,
			DisplayName: info.DisplayName,
			Mail:        info.Mail,
		},
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"user": UserResponse{
			Username:    currentUser.Username,
			DisplayName: currentUser.DisplayName,
		},
	})
}
