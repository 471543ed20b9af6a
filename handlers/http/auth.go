package httpHandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"draw2photo-server/services"
	"draw2photo-server/usecases"
)

// Flash is an inline message rendered by the form templates.
type Flash struct {
	Category string
	Text     string
}

type AuthHandler struct {
	accounts *usecases.AccountUseCase
	tokens   *services.TokenService
}

func NewAuthHandler(accounts *usecases.AccountUseCase, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{accounts: accounts, tokens: tokens}
}

// RegisterForm handles GET /register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{})
}

// Register handles POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	user, err := h.accounts.Register(email, password, confirm)
	if err != nil {
		// only validation failures are the user's fault; anything else
		// is an infrastructure fault
		status := http.StatusBadRequest
		var text string
		switch {
		case errors.Is(err, usecases.ErrPasswordMismatch):
			text = "Passwords do not match"
		case errors.Is(err, usecases.ErrEmailTaken):
			text = "Email already in use"
		default:
			status = http.StatusInternalServerError
			text = "Registration failed"
		}
		c.HTML(status, "register.html", gin.H{
			"messages": []Flash{{Category: "error", Text: text}},
		})
		return
	}

	h.startSession(c, user.ID, "register.html")
}

// LoginForm handles GET /login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

// Login handles POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.accounts.Login(email, password)
	if err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"messages": []Flash{{Category: "error", Text: "Invalid email or password"}},
		})
		return
	}

	h.startSession(c, user.ID, "login.html")
}

// Logout handles POST /logout. Clearing the cookie is the whole logout;
// an already-issued token stays valid until it expires on its own.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearAuthCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) startSession(c *gin.Context, userID uint, formTemplate string) {
	token, err := h.tokens.Issue(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, formTemplate, gin.H{
			"messages": []Flash{{Category: "error", Text: "Could not start session"}},
		})
		return
	}

	setAuthCookie(c, token)
	c.Redirect(http.StatusFound, "/generate")
}
