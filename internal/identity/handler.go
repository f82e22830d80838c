package identity

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
)

type identityHandler struct {
	identity *Service
}

func RegisterRoutes(rg *gin.RouterGroup, service *Service) {
	handler := identityHandler{identity: service}

	rg.POST("/signup", handler.signup)
	rg.POST("/login", handler.login)
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h identityHandler) signup(c *gin.Context) {
	body := SignupRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	username := strings.TrimSpace(body.Username)
	email := strings.TrimSpace(body.Email)
	if username == "" || len(username) > 32 || email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	user, err := h.identity.Signup(username, email, body.Password)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h identityHandler) login(c *gin.Context) {
	body := LoginRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	user, err := h.identity.Login(body.Email, body.Password)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, user)
}
