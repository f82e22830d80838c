package favorites

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/identity"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
)

type favoritesHandler struct {
	store     Store
	directory identity.Directory
}

func RegisterRoutes(rg *gin.RouterGroup, store Store, directory identity.Directory) {
	handler := favoritesHandler{store: store, directory: directory}

	routes := rg.Group("/favorites")
	routes.POST("", handler.add)
	routes.DELETE("", handler.remove)
	routes.GET("/:email", handler.listForUser)
}

type FavoriteRequest struct {
	Email       string            `json:"email"`
	CharacterId model.CharacterId `json:"characterId"`
}

func (h favoritesHandler) add(c *gin.Context) {
	body, user, ok := h.resolve(c)
	if !ok {
		return
	}

	favorite, err := h.store.Add(user.Id, body.CharacterId.String())
	if err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h favoritesHandler) remove(c *gin.Context) {
	body, user, ok := h.resolve(c)
	if !ok {
		return
	}

	if err := h.store.Remove(user.Id, body.CharacterId.String()); err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}

func (h favoritesHandler) listForUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	user, err := h.directory.FindByEmail(email)
	if err == identity.ErrUserNotFound {
		c.JSON(http.StatusNotFound, reject.NotFoundProblem())
		return
	}
	if err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return
	}

	favorites, listErr := h.store.ListByUser(user.Id)
	if listErr != nil {
		problem := reject.UnexpectedProblem(listErr)
		c.JSON(problem.Status, problem)
		return
	}
	if favorites == nil {
		favorites = []model.Favorite{}
	}

	c.JSON(http.StatusOK, favorites)
}

func (h favoritesHandler) resolve(c *gin.Context) (FavoriteRequest, model.User, bool) {
	body := FavoriteRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return body, model.User{}, false
	}

	if body.Email == "" || body.CharacterId == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return body, model.User{}, false
	}

	user, err := h.directory.FindByEmail(body.Email)
	if err == identity.ErrUserNotFound {
		c.JSON(http.StatusNotFound, reject.NotFoundProblem())
		return body, model.User{}, false
	}
	if err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return body, model.User{}, false
	}

	return body, user, true
}
