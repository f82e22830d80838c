package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/utils"
)

type statsHandler struct {
	stats *Service
}

func RegisterRoutes(rg *gin.RouterGroup, service *Service) {
	handler := statsHandler{stats: service}

	routes := rg.Group("/user-stats")
	routes.GET("", handler.listStats)
	routes.GET("/:email", handler.statsForUser)
	// Direct increments bypass the claim flow; admin-only by convention, kept
	// because the companion app's ops tooling still calls them.
	routes.POST("/increment-captured", handler.incrementCaptured)
	routes.POST("/increment-exchanged", handler.incrementExchanged)

	rg.GET("/leaderboard", handler.leaderboard)
}

type IncrementRequest struct {
	UserId uint64 `json:"userId"`
}

func (h statsHandler) listStats(c *gin.Context) {
	views, err := h.stats.ListAll()
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h statsHandler) statsForUser(c *gin.Context) {
	email := c.Param("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, reject.RequestParamsProblem())
		return
	}

	stats, err := h.stats.StatsForEmail(email)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h statsHandler) leaderboard(c *gin.Context) {
	page, pageErr := utils.NewPageRequest(c)
	if pageErr != nil {
		c.JSON(pageErr.Problem.Status, pageErr.Problem)
		return
	}

	board, err := h.stats.Leaderboard(page)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, board)
}

func (h statsHandler) incrementCaptured(c *gin.Context) {
	h.increment(c, h.stats.IncrementCaptured)
}

func (h statsHandler) incrementExchanged(c *gin.Context) {
	h.increment(c, h.stats.IncrementExchanged)
}

func (h statsHandler) increment(c *gin.Context, incrementWith func(uint64) (model.UserStats, *reject.ProblemWithTrace)) {
	body := IncrementRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.UserId == 0 {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	stats, err := incrementWith(body.UserId)
	if err != nil {
		c.JSON(err.Problem.Status, err.Problem)
		return
	}

	c.JSON(http.StatusOK, stats)
}
