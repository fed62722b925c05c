package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"dishdash-backend/models"
	"dishdash-backend/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	DB *gorm.DB
}

// sendToken is the common tail of signup/login/reset: issue a fresh JWT and
// return it with the (password-less) user.
func sendToken(c *gin.Context, user models.User, statusCode int) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(statusCode, gin.H{
		"status": "success",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

func hashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,min=3"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
		Phone    string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     req.Name,
		Slug:     utils.Slugify(req.Name),
		Email:    req.Email,
		Password: string(hashedPassword),
		Phone:    req.Phone,
		Role:     models.RoleUser,
		Active:   true,
	}

	if err := h.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	utils.SendWelcomeEmail(user.Email, user.Name)

	sendToken(c, user, http.StatusCreated)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	sendToken(c, user, http.StatusOK)
}

// ForgotPassword stores a hashed 6-digit reset code (valid 10 minutes) and
// emails it to the user. The code is cleared again when the email cannot be
// delivered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Please double-check your email and try again"})
		return
	}

	resetCode := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
	expires := time.Now().Add(10 * time.Minute)

	user.PasswordResetCode = hashResetCode(resetCode)
	user.PasswordResetExpires = &expires
	user.PasswordResetVerified = false
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store reset code"})
		return
	}

	if err := utils.SendPasswordResetEmail(user.Email, user.Name, resetCode); err != nil {
		user.PasswordResetCode = ""
		user.PasswordResetExpires = nil
		user.PasswordResetVerified = false
		h.DB.Save(&user)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Technical difficulties. Try again later"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Reset code sent to your email successfully",
	})
}

func (h *AuthHandler) VerifyResetCode(c *gin.Context) {
	var req struct {
		ResetCode string `json:"resetCode" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var user models.User
	err := h.DB.Where("password_reset_code = ? AND password_reset_expires > ?",
		hashResetCode(req.ResetCode), time.Now()).First(&user).Error
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reset code or expired"})
		return
	}

	user.PasswordResetVerified = true
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify reset code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Please double-check your email and try again"})
		return
	}

	if !user.PasswordResetVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset code not verified"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	now := time.Now()
	user.Password = string(hashedPassword)
	user.PasswordChangedAt = &now
	user.PasswordResetCode = ""
	user.PasswordResetExpires = nil
	user.PasswordResetVerified = false
	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	sendToken(c, user, http.StatusOK)
}
