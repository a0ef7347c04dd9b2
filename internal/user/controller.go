package user

import (
	"errors"
	"net/http"

	"postboard/internal/session"
	"postboard/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService UserServiceInterface
	sessions    session.SessionServiceInterface
}

func NewUserController(userService UserServiceInterface, sessions session.SessionServiceInterface) *UserController {
	return &UserController{
		userService: userService,
		sessions:    sessions,
	}
}

// Register handles POST /users. On success the response is the freshly
// issued session, so the client can authenticate immediately.
func (uc *UserController) Register(c *gin.Context) {
	var input validation.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if errs := validation.Check(input); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	user, err := uc.userService.Register(input)
	if err != nil {
		// A taken username lands here too and is deliberately not told
		// apart from any other store failure.
		logrus.WithError(err).Error("Failed to register user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	sess, err := uc.sessions.Issue(user.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session after registration")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Login handles POST /auth/login.
func (uc *UserController) Login(c *gin.Context) {
	var input validation.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if errs := validation.Check(input); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	user, err := uc.userService.VerifyCredentials(input.Username, input.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		logrus.WithError(err).Error("Failed to verify credentials")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	sess, err := uc.sessions.Issue(user.ID)
	if err != nil {
		logrus.WithError(err).Error("Failed to issue session at login")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, sess)
}

// Logout handles POST /auth/logout. It succeeds whether or not the token
// matched a live session.
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetHeader("Authorization")

	if err := uc.sessions.Revoke(token); err != nil {
		logrus.WithError(err).Error("Failed to revoke session")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetUser handles GET /users/:id, returning the favorite-book field
// expanded into an object.
func (uc *UserController) GetUser(c *gin.Context) {
	profile, err := uc.userService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logrus.WithError(err).Error("Failed to get user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateUser handles PUT /users/:id. The response carries the favorite-book
// field in its serialized storage form, unlike GetUser.
func (uc *UserController) UpdateUser(c *gin.Context) {
	var input validation.UserUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if errs := validation.Check(input); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	user, err := uc.userService.Update(c.Param("id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logrus.WithError(err).Error("Failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, user)
}
