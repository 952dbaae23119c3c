package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant-pos/models"
	"restaurant-pos/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register -> create a login account
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"` // Manager, Staff
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hashed),
		Role:     req.Role,
		FullName: req.FullName,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{"user_id": user.ID})
}

// Login -> access + refresh tokens with role and name claims
func (uc *UserController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Role, user.FullName)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, user.Role, user.FullName)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for %s (role=%s)", user.Username, user.Role)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access":   access,
		"refresh":  refresh,
		"role":     user.Role,
		"fullname": user.FullName,
	})
}

// Refresh -> exchange a refresh token for a new access token
func (uc *UserController) Refresh(c *gin.Context) {
	var req struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	claims, err := utils.ParseToken(req.Refresh)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		utils.RespondError(c, http.StatusUnauthorized, fmt.Errorf("not a refresh token"))
		return
	}

	access, err := utils.GenerateAccessToken(claims.UserID, claims.Role, claims.FullName)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{"access": access})
}

// GetProfile -> identity of the authenticated user
func (uc *UserController) GetProfile(c *gin.Context) {
	userIDValue, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("invalid user id type"))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("user not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data", gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"role":      user.Role,
		"full_name": user.FullName,
	})
}
