package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/request"
)

type requestApi struct {
	svc      *request.Service
	validate *validator.Validate
}

func registerRequestAPI(g *echo.Group, svc *request.Service, validate *validator.Validate) {
	api := requestApi{svc: svc, validate: validate}

	rg := g.Group("/profile-requests")
	rg.GET("", api.query)
	rg.GET("/:id", api.retrieve)
	rg.PUT("/:id", api.resolve)
	rg.DELETE("/:id", api.destroy)
}

func (api *requestApi) query(ctx echo.Context) error {
	reqs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying profile requests")
	}
	if reqs == nil {
		reqs = []request.ProfileRequest{}
	}
	return ctx.JSON(http.StatusOK, reqs)
}

func (api *requestApi) retrieve(ctx echo.Context) error {
	req, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting profile request")
	}
	return ctx.JSON(http.StatusOK, req)
}

func (api *requestApi) resolve(ctx echo.Context) error {
	var data request.ResolveProfileRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResolveProfileRequest")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	req, err := api.svc.Resolve(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "resolving profile request")
	}
	return ctx.JSON(http.StatusOK, req)
}

func (api *requestApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting profile request")
	}
	return ctx.NoContent(http.StatusNoContent)
}
