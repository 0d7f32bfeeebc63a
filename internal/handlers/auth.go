package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/auth"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/services"
	"github.com/sigma-matching/sigma/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

var googleClient = &http.Client{Timeout: 10 * time.Second}

func googleUserInfoURL() string {
	if url := os.Getenv("GOOGLE_USERINFO_URL"); url != "" {
		return url
	}
	return "https://www.googleapis.com/oauth2/v1/userinfo"
}

func Register(ctx *gin.Context) {
	var req RegisterRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", req.Email).First(&existingUser).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	role := req.Role

	if role == "" {
		role = models.RoleAgent
	}

	newUser := models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokenPair(newUser.ID)

	if err != nil {
		log.Printf("Failed to generate tokens: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	services.RecordAction(db.DB, newUser.ID, services.ActionUserRegister, nil, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusCreated, gin.H{
		"message":       "User created successfully",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          types.NewUserResponse(newUser),
	})
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User

	err := db.DB.Where("email = ?", req.Email).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Accounts created through Google login carry no password hash and can
	// never authenticate with a password.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !user.IsActive {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Account is disabled"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokenPair(user.ID)

	if err != nil {
		log.Printf("Failed to generate tokens: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	services.RecordAction(db.DB, user.ID, services.ActionUserLogin, nil, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          types.NewUserResponse(user),
	})
}

func Me(ctx *gin.Context) {
	user, ok := currentUserOr404(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(user)})
}

func GoogleLogin(ctx *gin.Context) {
	var req GoogleLoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := googleClient.Get(fmt.Sprintf("%s?access_token=%s", googleUserInfoURL(), req.Token))

	if err != nil {
		log.Printf("Failed to reach Google userinfo endpoint: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	var userInfo struct {
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil || userInfo.Email == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid Google token"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(userInfo.Email))

	var user models.User

	err = db.DB.Where("email = ?", email).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:     email,
			FirstName: userInfo.GivenName,
			LastName:  userInfo.FamilyName,
			Role:      models.RoleAgent,
			IsActive:  true,
		}

		if err := db.DB.Create(&user).Error; err != nil {
			log.Printf("Failed to create user from Google login: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	} else if err != nil {
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokenPair(user.ID)

	if err != nil {
		log.Printf("Failed to generate tokens: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	services.RecordAction(db.DB, user.ID, services.ActionGoogleLogin, nil, ctx.ClientIP(), ctx.Request.UserAgent())

	ctx.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          types.NewUserResponse(user),
	})
}
