package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/lecturer"
)

type lecturerApi struct {
	svc      *lecturer.Service
	validate *validator.Validate
}

func registerLecturerAPI(g *echo.Group, svc *lecturer.Service, validate *validator.Validate) {
	api := lecturerApi{svc: svc, validate: validate}

	lg := g.Group("/lecturers")
	lg.POST("", api.create)
	lg.GET("", api.query)
	lg.DELETE("", api.destroyMultiple)
	lg.GET("/:id", api.retrieve)
	lg.PUT("/:id", api.update)
	lg.DELETE("/:id", api.destroy)
}

func (api *lecturerApi) create(ctx echo.Context) error {
	var data lecturer.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	if err := data.Validate(ctx.Request().Context(), api.svc); err != nil {
		return err
	}

	lect, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lecturer")
	}
	return ctx.JSON(http.StatusCreated, lect)
}

func (api *lecturerApi) query(ctx echo.Context) error {
	lects, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lecturers")
	}
	if lects == nil {
		lects = []lecturer.Lecturer{}
	}
	return ctx.JSON(http.StatusOK, lects)
}

func (api *lecturerApi) retrieve(ctx echo.Context) error {
	lect, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting lecturer")
	}
	return ctx.JSON(http.StatusOK, lect)
}

func (api *lecturerApi) update(ctx echo.Context) error {
	var data lecturer.UpdateLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLecturer")
	}

	orig, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting lecturer")
	}
	if err = data.Validate(ctx.Request().Context(), orig, api.svc); err != nil {
		return err
	}

	lect, err := api.svc.Update(ctx.Request().Context(), orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating lecturer")
	}
	return ctx.JSON(http.StatusOK, lect)
}

func (api *lecturerApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "getting lecturer")
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting lecturer")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *lecturerApi) destroyMultiple(ctx echo.Context) error {
	var data DeleteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.Delete(ctx.Request().Context(), data.IDs...); err != nil {
		return errors.Wrap(err, "deleting lecturers")
	}
	return ctx.NoContent(http.StatusNoContent)
}
