package app

import (
	"net/http"

	"github.com/kegliz/qcore/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "passes",
			Method:      http.MethodGet,
			Pattern:     "/passes",
			HandlerFunc: a.ListPasses,
		},
		{
			Name:        "compile",
			Method:      http.MethodPost,
			Pattern:     "/compile",
			HandlerFunc: a.Compile,
		},
		{
			Name:        "compile.result",
			Method:      http.MethodGet,
			Pattern:     "/compile/:id",
			HandlerFunc: a.GetCompileResult,
		},
	}
}
