package post

import (
	"errors"
	"net/http"

	"postboard/internal/middleware"
	"postboard/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type PostController struct {
	service PostServiceInterface
}

func NewPostController(service PostServiceInterface) *PostController {
	return &PostController{
		service: service,
	}
}

// ListPosts handles GET /posts.
func (pc *PostController) ListPosts(c *gin.Context) {
	posts, err := pc.service.List()
	if err != nil {
		logrus.WithError(err).Error("Failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id.
func (pc *PostController) GetPost(c *gin.Context) {
	p, err := pc.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		logrus.WithError(err).Error("Failed to get post")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreatePost handles POST /posts. The author is taken from the caller's
// session; a client-supplied authorId is ignored.
func (pc *PostController) CreatePost(c *gin.Context) {
	var input validation.PostCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if errs := validation.Check(input); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	sess, err := middleware.SessionFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	p, err := pc.service.Create(sess.UserID, input)
	if err != nil {
		logrus.WithError(err).Error("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, p)
}

// UpdatePost handles PUT /posts/:id.
func (pc *PostController) UpdatePost(c *gin.Context) {
	var input validation.PostUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if errs := validation.Check(input); errs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
		return
	}

	p, err := pc.service.Update(c.Param("id"), input)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		logrus.WithError(err).Error("Failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// DeletePost handles DELETE /posts/:id.
func (pc *PostController) DeletePost(c *gin.Context) {
	if err := pc.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		logrus.WithError(err).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
