package graphql

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"

	"github.com/hyeonss0417/bulletin-board/middleware"
	"github.com/hyeonss0417/bulletin-board/utils"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL requests against the schema. The caller identity
// resolved by the OptionalAuth middleware is forwarded through the execution
// context so mutations can enforce authentication.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req request
		if err := ctx.ShouldBindJSON(&req); err != nil || req.Query == "" {
			utils.Error(ctx, http.StatusBadRequest, 40040, "invalid graphql request")
			return
		}

		execCtx := ctx.Request.Context()
		if user, ok := middleware.CurrentUser(ctx); ok {
			execCtx = WithCaller(execCtx, user)
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        execCtx,
		})
		ctx.JSON(http.StatusOK, result)
	}
}
