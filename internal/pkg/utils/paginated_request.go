package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nemesia-app/villaindex-backend/internal/pkg/reject"
)

const (
	pageSizeInvalid  string = "error.request.page-size-invalid"
	pageTokenInvalid string = "error.request.page-token-invalid"

	defaultPageSize = 25
	maxPageSize     = 100
)

type PageRequest struct {
	Size   int
	Token  int
	Offset int
}

func NewPageRequest(c *gin.Context) (PageRequest, *reject.ProblemWithTrace) {
	pageSize := defaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return PageRequest{}, &reject.ProblemWithTrace{
				Problem: reject.NewProblem().
					WithTitle("Page size is not a positive number").
					WithStatus(http.StatusBadRequest).
					WithCode(pageSizeInvalid).
					Build(),
				Cause: err,
			}
		}
		pageSize = parsed
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	pageToken := 0
	if raw := c.Query("page_token"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return PageRequest{}, &reject.ProblemWithTrace{
				Problem: reject.NewProblem().
					WithTitle("Page token is not a number").
					WithStatus(http.StatusBadRequest).
					WithCode(pageTokenInvalid).
					Build(),
				Cause: err,
			}
		}
		pageToken = parsed
	}

	return PageRequest{
		Size:   pageSize,
		Token:  pageToken,
		Offset: pageSize * pageToken,
	}, nil
}
