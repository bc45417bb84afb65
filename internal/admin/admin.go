// Package admin provides a small HTML management site over the user
// store, restricted to staff accounts and authenticated with a signed
// session cookie.
package admin

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/recipehub/backend/config"
	"github.com/recipehub/backend/internal/models"
	"github.com/recipehub/backend/internal/service"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded admin pages for use with
// gin's SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.html"))
}

// Handler serves the admin pages.
type Handler struct {
	userService *service.UserService
	authService *service.AuthService
	sessions    *SessionManager
}

func NewHandler(userService *service.UserService, authService *service.AuthService, sessions *SessionManager) *Handler {
	return &Handler{
		userService: userService,
		authService: authService,
		sessions:    sessions,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	admin := router.Group("/admin")
	{
		admin.GET("/login", h.LoginPage)
		admin.POST("/login", h.Login)
		admin.GET("/logout", h.Logout)

		users := admin.Group("/users")
		users.Use(h.requireStaff())
		{
			users.GET("", h.UserList)
			users.GET("/new", h.UserAddPage)
			users.POST("/new", h.UserAdd)
			users.GET("/:id", h.UserChangePage)
			users.POST("/:id", h.UserChange)
		}
	}
}

// requireStaff redirects to the login page unless the request carries a
// valid session cookie belonging to an active staff user.
func (h *Handler) requireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		userID, err := h.sessions.Parse(cookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		user, err := h.userService.Get(c.Request.Context(), userID)
		if err != nil || !user.IsStaff || !user.IsActive {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Set("admin_user", user)
		c.Next()
	}
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{})
}

func (h *Handler) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.authService.Authenticate(c.Request.Context(), email, password)
	if err != nil || !user.IsStaff {
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": "Invalid credentials or not a staff account"})
		return
	}

	token, err := h.sessions.Issue(user)
	if err != nil {
		log.Printf("admin session issue failed: %v", err)
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{"Error": "Failed to start session"})
		return
	}

	c.SetCookie(SessionCookie, token, int(sessionTTL.Seconds()), "/admin", "", config.IsProduction(), true)
	c.Redirect(http.StatusFound, "/admin/users")
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/admin", "", config.IsProduction(), true)
	c.Redirect(http.StatusFound, "/admin/login")
}

// UserList renders the changelist with each user's email and name.
func (h *Handler) UserList(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		c.HTML(http.StatusInternalServerError, "user_list.html", gin.H{"Error": "Failed to load users"})
		return
	}
	c.HTML(http.StatusOK, "user_list.html", gin.H{"Users": users})
}

func (h *Handler) UserAddPage(c *gin.Context) {
	c.HTML(http.StatusOK, "user_form.html", gin.H{
		"Title":  "Add user",
		"Action": "/admin/users/new",
		"User":   &models.User{IsActive: true},
		"IsNew":  true,
	})
}

func (h *Handler) UserAdd(c *gin.Context) {
	input := userInputFromForm(c)
	user, err := h.userService.Create(c.Request.Context(), input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrPasswordTooShort) {
			status = http.StatusBadRequest
		}
		c.HTML(status, "user_form.html", gin.H{
			"Title":  "Add user",
			"Action": "/admin/users/new",
			"User":   &models.User{Name: input.Name, Email: input.Email},
			"IsNew":  true,
			"Error":  err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, "/admin/users/"+user.ID.String())
}

func (h *Handler) UserChangePage(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "user_form.html", gin.H{
		"Title":  "Change user",
		"Action": "/admin/users/" + user.ID.String(),
		"User":   user,
	})
}

func (h *Handler) UserChange(c *gin.Context) {
	user, ok := h.lookupUser(c)
	if !ok {
		return
	}

	input := userInputFromForm(c)
	updated, err := h.userService.Update(c.Request.Context(), user.ID, input)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrEmailTaken) || errors.Is(err, service.ErrPasswordTooShort) {
			status = http.StatusBadRequest
		}
		c.HTML(status, "user_form.html", gin.H{
			"Title":  "Change user",
			"Action": "/admin/users/" + user.ID.String(),
			"User":   user,
			"Error":  err.Error(),
		})
		return
	}
	c.HTML(http.StatusOK, "user_form.html", gin.H{
		"Title":   "Change user",
		"Action":  "/admin/users/" + updated.ID.String(),
		"User":    updated,
		"Message": "Saved",
	})
}

func (h *Handler) lookupUser(c *gin.Context) (*models.User, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.String(http.StatusNotFound, "user not found")
		return nil, false
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "user not found")
		return nil, false
	}
	return user, true
}

func userInputFromForm(c *gin.Context) service.UserInput {
	return service.UserInput{
		Name:        c.PostForm("name"),
		Email:       c.PostForm("email"),
		Password:    c.PostForm("password"),
		IsActive:    c.PostForm("is_active") == "on",
		IsStaff:     c.PostForm("is_staff") == "on",
		IsSuperuser: c.PostForm("is_superuser") == "on",
	}
}
