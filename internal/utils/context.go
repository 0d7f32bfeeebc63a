package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sigma-matching/sigma/db"
	"github.com/sigma-matching/sigma/internal/models"
	"github.com/sigma-matching/sigma/internal/types"
)

var ErrNotAuthenticated = errors.New("user not authenticated")

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	value, exists := ctx.Get(types.ContextUserIDKey)

	if !exists {
		return 0, ErrNotAuthenticated
	}

	userID, ok := value.(uint)

	if !ok {
		return 0, ErrNotAuthenticated
	}

	return userID, nil
}

// GetCurrentUser loads the caller's full user record. Returns
// gorm.ErrRecordNotFound when the token's subject no longer exists.
func GetCurrentUser(ctx *gin.Context) (models.User, error) {
	userID, err := GetCurrentUserID(ctx)

	if err != nil {
		return models.User{}, err
	}

	var user models.User

	if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}
