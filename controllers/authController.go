package controllers

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/watchDOGGGG/relook-online-store/config"
	"github.com/watchDOGGGG/relook-online-store/models"
	"github.com/watchDOGGGG/relook-online-store/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "user already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid email or password"
	msgAccountNotActivated   = "Account not activated, check your email to activate your account."
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidActivationLink = "Invalid or expired activation link"
	msgActivationSuccess     = "account has been activated successfully."
	msgResetLinkSent         = "Check your email for a password reset link."
	msgUserCreated           = "User created successfully. Check your email to activate your account."
	msgUserNotFound          = "user with this email does not exist"
	msgResetTokenError       = "There was an error trying to generate password reset link. Try again later."
	msgUnableToSaveToken     = "unable to save reset token."
	msgUnableToResetPassword = "unable to reset password"
)

var actionEmailTemplate = template.Must(template.New("action_email").Parse(`<!DOCTYPE html>
<html>
  <body style="margin:0;padding:0;font-family:-apple-system,'Segoe UI',Roboto,sans-serif;background-color:#f4f4f4;">
    <div style="max-width:600px;margin:0 auto;padding:20px;">
      <div style="background-color:#ffffff;border-radius:12px;overflow:hidden;">
        <div style="background-color:#000000;padding:30px;text-align:center;">
          <h1 style="color:#ffffff;margin:0;font-size:28px;">RELOOKSTORES</h1>
        </div>
        <div style="padding:30px;">
          <p style="color:#333;">Hi {{.Name}},</p>
          <p style="color:#666;">{{.Message}}</p>
          <p style="text-align:center;margin:30px 0;">
            <a href="{{.ActionURL}}" style="background-color:#000000;color:#ffffff;padding:12px 30px;border-radius:6px;text-decoration:none;">{{.ActionLabel}}</a>
          </p>
        </div>
      </div>
    </div>
  </body>
</html>`))

type actionEmailData struct {
	Name        string
	Message     string
	ActionURL   string
	ActionLabel string
}

type AuthController struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *utils.Mailer
}

func NewAuthController(db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) *AuthController {
	return &AuthController{db: db, cfg: cfg, mailer: mailer}
}

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func (c *AuthController) generateJWT(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Fullname,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(time.Hour * 24 * 30).Unix(),
	})

	return token.SignedString([]byte(c.cfg.JWTSecret))
}

func (c *AuthController) checkUserExists(email string) (bool, error) {
	var existingUser models.User
	result := c.db.Where("email = ?", email).Find(&existingUser)
	return result.RowsAffected > 0, result.Error
}

func (c *AuthController) findUserByEmail(email string) (models.User, error) {
	var user models.User
	result := c.db.Where("email = ?", email).First(&user)
	return user, result.Error
}

func (c *AuthController) sendAccountVerificationEmail(user models.User, activationToken string) error {
	data := actionEmailData{
		Name:        user.Fullname,
		Message:     "Thank you for signing up! Click the button below to verify your account.",
		ActionURL:   c.cfg.FrontendURL + "/auth/verify-email?token=" + url.QueryEscape(activationToken),
		ActionLabel: "Verify Email",
	}
	return c.mailer.Send(user.Email, "Account Verification", actionEmailTemplate, data)
}

func (c *AuthController) sendPasswordResetEmail(user models.User, resetToken string) error {
	data := actionEmailData{
		Name:        user.Fullname,
		Message:     "You requested a password reset. Click the button below to reset your password.",
		ActionURL:   c.cfg.FrontendURL + "/auth/reset-password?token=" + url.QueryEscape(resetToken),
		ActionLabel: "Reset Password",
	}
	return c.mailer.Send(user.Email, "Relook Stores Password Reset", actionEmailTemplate, data)
}

// Signup handles user registration
func (c *AuthController) Signup(ctx *gin.Context) {
	var signUpData models.User
	if err := ctx.ShouldBindJSON(&signUpData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	exists, err := c.checkUserExists(signUpData.Email)
	if err != nil {
		log.Println("Database error during user check:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if exists {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(signUpData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}
	signUpData.Password = hashedPassword

	// Role is never taken from the request body
	signUpData.Role = "user"

	activationToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	signUpData.AccountActivationToken = activationToken
	signUpData.AccountActivated = false

	if result := c.db.Create(&signUpData); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	// Continue despite email errors, but log them
	if err := c.sendAccountVerificationEmail(signUpData, activationToken); err != nil {
		log.Println("Error sending verification email:", err)
	} else {
		log.Println("Verification email sent successfully to:", signUpData.Email)
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated})
}

// Login handles user authentication
func (c *AuthController) Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.findUserByEmail(loginData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidCredentials)
		return
	}

	if !user.AccountActivated {
		sendErrorResponse(ctx, http.StatusBadRequest, msgAccountNotActivated)
		return
	}

	tokenString, err := c.generateJWT(user)
	if err != nil {
		log.Println("JWT generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"token": tokenString})
}

// ActivateAccount activates a user account using the activation token
func (c *AuthController) ActivateAccount(ctx *gin.Context) {
	activationToken := ctx.Param("activationToken")

	result := c.db.Model(&models.User{}).
		Where("account_activation_token = ? AND account_activation_token <> ''", activationToken).
		Updates(map[string]any{
			"account_activated":        true,
			"account_activation_token": "",
		})

	if result.Error != nil {
		log.Println("Account activation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgActivationSuccess})
}

// SendPasswordResetLink sends a password reset link to the user's email
func (c *AuthController) SendPasswordResetLink(ctx *gin.Context) {
	type ForgotPasswordBody struct {
		Email string `json:"email" binding:"required,email"`
	}

	var forgotPasswordData ForgotPasswordBody
	if err := ctx.ShouldBindJSON(&forgotPasswordData); err != nil {
		log.Println("Bind error:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := c.findUserByEmail(forgotPasswordData.Email)
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserNotFound)
		return
	}

	passwordResetToken, err := utils.GenerateCode(16)
	if err != nil {
		log.Println("Reset token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgResetTokenError)
		return
	}

	if result := c.db.Model(&models.User{}).
		Where("email = ?", forgotPasswordData.Email).
		Update("password_reset_token", passwordResetToken); result.Error != nil {

		log.Println("Error saving reset token:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToSaveToken)
		return
	}

	if err := c.sendPasswordResetEmail(user, passwordResetToken); err != nil {
		log.Println("Error sending password reset email:", err)
	} else {
		log.Println("Password reset email sent successfully to:", forgotPasswordData.Email)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgResetLinkSent})
}

// ResetPassword resets a user's password using a reset token
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	type ResetPasswordInfo struct {
		Password string `json:"password" binding:"required,min=8"`
	}

	var resetPasswordData ResetPasswordInfo
	if err := ctx.ShouldBindJSON(&resetPasswordData); err != nil {
		log.Println("Invalid reset password data:", err)
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(resetPasswordData.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	resetToken := ctx.Param("resetToken")
	result := c.db.Model(&models.User{}).
		Where("password_reset_token = ? AND password_reset_token <> ''", resetToken).
		Updates(map[string]any{
			"password":             hashedPassword,
			"password_reset_token": "",
		})

	if result.Error != nil {
		log.Println("Error resetting password:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgUnableToResetPassword)
		return
	}

	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidActivationLink)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password reset successful"})
}
