package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/galleria-dev/galleria/internal/auth"
	"github.com/galleria-dev/galleria/internal/mailer"
	"github.com/galleria-dev/galleria/internal/models"
	"github.com/galleria-dev/galleria/internal/repository"
	"github.com/galleria-dev/galleria/internal/storage"
	"github.com/galleria-dev/galleria/internal/types"
	"github.com/galleria-dev/galleria/internal/utils"
	"github.com/galleria-dev/galleria/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Reset tokens are single-use and valid for two minutes.
const resetTokenTTL = 2 * time.Minute

type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	Password  string `json:"password"`
}

type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignOutRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type UpdateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Contact   string `json:"contact"`
	Password  string `json:"password"`
}

type ForgetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

type AuthHandler struct {
	users   repository.UserRepository
	resets  repository.PasswordResetRepository
	store   storage.StorageDirectory
	tokens  *auth.TokenManager
	revoker auth.TokenRevoker
	mail    mailer.Mailer
	baseURL string
}

func NewAuthHandler(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	store storage.StorageDirectory,
	tokens *auth.TokenManager,
	revoker auth.TokenRevoker,
	mail mailer.Mailer,
	baseURL string,
) *AuthHandler {
	return &AuthHandler{
		users:   users,
		resets:  resets,
		store:   store,
		tokens:  tokens,
		revoker: revoker,
		mail:    mail,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (h *AuthHandler) Signup(ctx *gin.Context) {
	var req SignupRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if errs := validation.SignupFields(
		req.FirstName, req.LastName, req.Username,
		req.Email, req.Contact, req.Password,
	); len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	taken, err := h.users.UsernameTaken(req.Username, 0)
	if err != nil {
		log.Printf("Database error when checking username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
		return
	}

	taken, err = h.users.EmailTaken(req.Email, 0)
	if err != nil {
		log.Printf("Database error when checking email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.store.CreateUserDir(req.Username); err != nil {
		log.Printf("Failed to create user directory: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		Contact:      req.Contact,
		PasswordHash: string(passwordHash),
	}

	if err := h.users.Create(&newUser); err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user": userResponse(newUser)})
}

func (h *AuthHandler) Signin(ctx *gin.Context) {
	var req SigninRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	user, err := h.users.GetByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	access, err := h.tokens.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Failed to generate access token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	refresh, err := h.tokens.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		log.Printf("Failed to generate refresh token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.users.SaveToken(user.ID, access); err != nil {
		log.Printf("Failed to persist access token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, types.TokenPairResponse{Access: access, Refresh: refresh})
}

func (h *AuthHandler) SignOut(ctx *gin.Context) {
	var req SignOutRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	claims, err := h.tokens.ParseRefreshToken(req.Refresh)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Token is invalid or expired"})
		return
	}

	revoked, err := h.revoker.IsRevoked(claims.TokenID)
	if err != nil {
		log.Printf("Failed to check token blacklist: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if revoked {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Token is blacklisted"})
		return
	}

	if err := h.revoker.Revoke(claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		log.Printf("Failed to blacklist token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ValidateEmail answers whether an email address is well-formed and not
// yet registered. Used by the signup form for live feedback.
func (h *AuthHandler) ValidateEmail(ctx *gin.Context) {
	email := ctx.Query("email")
	if ctx.Request.Method == http.MethodPost {
		var body struct {
			Email string `json:"email"`
		}
		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		email = body.Email
	}

	email = strings.ToLower(strings.TrimSpace(email))

	if msg := validation.Email(email); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": msg}})
		return
	}

	taken, err := h.users.EmailTaken(email, 0)
	if err != nil {
		log.Printf("Database error when checking email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": "Email already exists"}})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "email": email})
}

// ValidateUsername is the username counterpart of ValidateEmail.
func (h *AuthHandler) ValidateUsername(ctx *gin.Context) {
	username := ctx.Query("username")
	if ctx.Request.Method == http.MethodPost {
		var body struct {
			Username string `json:"username"`
		}
		if err := ctx.BindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		username = body.Username
	}

	if msg := validation.Username(username); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": msg}})
		return
	}

	taken, err := h.users.UsernameTaken(username, 0)
	if err != nil {
		log.Printf("Database error when checking username: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if taken {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"username": "Username already exists"}})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "username": username})
}

func (h *AuthHandler) GetProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := h.users.GetByID(currentUser.ID)
	if err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

// UpdateProfile handles PUT: every field must be supplied and pass the
// signup rules.
func (h *AuthHandler) UpdateProfile(ctx *gin.Context) {
	h.updateProfile(ctx, false)
}

// PatchProfile handles PATCH: only supplied fields are re-validated and
// written.
func (h *AuthHandler) PatchProfile(ctx *gin.Context) {
	h.updateProfile(ctx, true)
}

func (h *AuthHandler) updateProfile(ctx *gin.Context, partial bool) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dbUser, err := h.users.GetByID(currentUser.ID)
	if err != nil {
		log.Printf("Failed to fetch user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req UpdateProfileRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	errs := validation.FieldErrors{}
	updates := make(map[string]interface{})

	check := func(field, value, msg string, column string) {
		if partial && value == "" {
			return
		}
		if msg != "" {
			errs[field] = msg
			return
		}
		updates[column] = value
	}

	check("first_name", req.FirstName, validation.FirstName(req.FirstName), "first_name")
	check("last_name", req.LastName, validation.LastName(req.LastName), "last_name")
	check("username", req.Username, validation.Username(req.Username), "username")
	check("email", req.Email, validation.Email(req.Email), "email")
	check("contact", req.Contact, validation.Contact(req.Contact), "contact")

	if !partial || req.Password != "" {
		if msg := validation.Password(req.Password); msg != "" {
			errs["password"] = msg
		} else {
			hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if hashErr != nil {
				log.Printf("Failed to hash password: %v", hashErr)
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
			updates["password_hash"] = string(hash)
		}
	}

	if len(errs) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	if newUsername, ok := updates["username"].(string); ok && newUsername != dbUser.Username {
		taken, takenErr := h.users.UsernameTaken(newUsername, dbUser.ID)
		if takenErr != nil {
			log.Printf("Database error when checking username: %v", takenErr)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if taken {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Username already exists"})
			return
		}
	}

	if newEmail, ok := updates["email"].(string); ok && newEmail != dbUser.Email {
		taken, takenErr := h.users.EmailTaken(newEmail, dbUser.ID)
		if takenErr != nil {
			log.Printf("Database error when checking email: %v", takenErr)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if taken {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
	}

	if err := h.users.Update(dbUser.ID, updates); err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if newUsername, ok := updates["username"].(string); ok && newUsername != dbUser.Username {
		if err := h.store.RenameUserDir(dbUser.Username, newUsername); err != nil {
			log.Printf("Failed to rename user directory: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	updated, err := h.users.GetByID(dbUser.ID)
	if err != nil {
		log.Printf("Failed to fetch updated user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(updated),
	})
}

func (h *AuthHandler) ForgetPassword(ctx *gin.Context) {
	var req ForgetPasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if msg := validation.Email(email); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"email": msg}})
		return
	}

	user, err := h.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email does not exist"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	token := uuid.NewString()

	if _, err := h.resets.Replace(user.ID, token); err != nil {
		log.Printf("Failed to store reset token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	resetURL := h.baseURL + "/api/reset_password/" + token

	if err := h.mail.SendPasswordReset(user.Email, resetURL); err != nil {
		log.Printf("Failed to send reset email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send reset email"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset email sent"})
}

func (h *AuthHandler) ResetPassword(ctx *gin.Context) {
	token := ctx.Param("token")

	var req ResetPasswordRequest
	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	reset, err := h.resets.GetByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Token is invalid"})
			return
		}
		log.Printf("Database error when fetching reset token: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if time.Since(reset.CreatedAt) > resetTokenTTL {
		if err := h.resets.Delete(reset.ID); err != nil {
			log.Printf("Failed to delete expired reset token: %v", err)
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Token has expired"})
		return
	}

	if req.NewPassword != req.ConfirmPassword {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if msg := validation.Password(req.NewPassword); msg != "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"new_password": msg}})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := h.users.UpdatePassword(reset.UserID, string(hash)); err != nil {
		log.Printf("Failed to update password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	// Single use: the token is consumed on success.
	if err := h.resets.Delete(reset.ID); err != nil {
		log.Printf("Failed to delete used reset token: %v", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func userResponse(user models.User) types.UserResponse {
	return types.UserResponse{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Username:  user.Username,
		Email:     user.Email,
		Contact:   user.Contact,
	}
}
