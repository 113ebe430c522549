package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core"
	"github.com/tuitionlk/portal/core/material"
	"github.com/tuitionlk/portal/core/request"
)

type studentApi struct {
	materialSvc *material.Service
	requestSvc  *request.Service
	validate    *validator.Validate
}

func registerStudentAPI(g *echo.Group, materialSvc *material.Service, requestSvc *request.Service, validate *validator.Validate) {
	api := studentApi{materialSvc: materialSvc, requestSvc: requestSvc, validate: validate}

	g.GET("/materials", api.queryMaterials)
	g.POST("/profile-requests", api.submitRequest)
	g.GET("/profile-requests", api.queryOwnRequests)
}

// queryMaterials runs the caller's entitlements through the visibility rules.
// `course` and `lecturer` query params may be repeated.
func (api *studentApi) queryMaterials(ctx echo.Context) error {
	var filter material.VisibilityFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []material.Material{})
	}

	mats, err := api.materialSvc.ResolveVisible(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "resolving visible materials")
	}
	if mats == nil {
		mats = []material.Material{}
	}
	return ctx.JSON(http.StatusOK, mats)
}

func (api *studentApi) submitRequest(ctx echo.Context) error {
	var data request.NewProfileRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfileRequest")
	}
	if err := data.Validate(api.requestSvc); err != nil {
		return err
	}

	req, err := api.requestSvc.Submit(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "submitting profile request")
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (api *studentApi) queryOwnRequests(ctx echo.Context) error {
	studentID := core.CleanString(ctx.QueryParam("student"))
	if studentID == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "student", Error: "this query param is required"})
	}

	reqs, err := api.requestSvc.QueryByStudent(ctx.Request().Context(), studentID)
	if err != nil {
		return errors.Wrap(err, "querying profile requests")
	}
	if reqs == nil {
		reqs = []request.ProfileRequest{}
	}
	return ctx.JSON(http.StatusOK, reqs)
}
