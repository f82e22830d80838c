package custody

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/identity"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/model"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
	"github.com/rs/zerolog/log"
)

type custodyHandler struct {
	custody   *Service
	directory identity.Directory
}

func RegisterRoutes(rg *gin.RouterGroup, service *Service, directory identity.Directory) {
	handler := custodyHandler{custody: service, directory: directory}

	routes := rg.Group("/villains")
	routes.POST("", handler.claim)
	routes.GET("/:email", handler.listForUser)
}

type ClaimRequest struct {
	Email       string            `json:"email"`
	CharacterId model.CharacterId `json:"characterId"`
}

type ExchangeResponse struct {
	Villain model.Villain `json:"villain"`
	// PreviousUser is null when the prior holder no longer resolves.
	PreviousUser *model.User `json:"previousUser"`
}

func (h custodyHandler) claim(c *gin.Context) {
	body := ClaimRequest{}
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, reject.BodyParseProblem())
		return
	}

	if body.Email == "" || body.CharacterId == "" {
		c.JSON(http.StatusBadRequest, reject.RequestValidationProblem())
		return
	}

	claimant, err := h.directory.FindByEmail(body.Email)
	if err == identity.ErrUserNotFound {
		c.JSON(http.StatusNotFound, reject.NotFoundProblem())
		return
	}
	if err != nil {
		problem := reject.UnexpectedProblem(err)
		c.JSON(problem.Status, problem)
		return
	}

	result, claimErr := h.custody.Claim(claimant.Id, body.CharacterId.String())
	if claimErr != nil {
		c.JSON(claimErr.Problem.Status, claimErr.Problem)
		return
	}

	switch result.Type {
	case ClaimCaptured:
		c.JSON(http.StatusCreated, result.Villain)
	case ClaimRetained:
		c.JSON(http.StatusOK, result.Villain)
	case ClaimExchanged:
		response := ExchangeResponse{Villain: result.Villain}
		previous, lookupErr := h.directory.FindById(result.PreviousHolderId)
		switch {
		case lookupErr == nil:
			response.PreviousUser = &previous
		case lookupErr != identity.ErrUserNotFound:
			// The transfer itself committed; degrade to a null previousUser
			// but leave a trace of why.
			log.Warn().Err(lookupErr).
				Uint64("user_id", result.PreviousHolderId).
				Msg("Could not load previous holder")
		}
		c.JSON(http.StatusOK, response)
	}
}

func (h custodyHandler) listForUser(c *gin.Context) {
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

	held, listErr := h.custody.ListByHolder(user.Id)
	if listErr != nil {
		c.JSON(listErr.Problem.Status, listErr.Problem)
		return
	}
	if held == nil {
		held = []model.Villain{}
	}

	c.JSON(http.StatusOK, held)
}
