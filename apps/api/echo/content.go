package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/content"
)

type contentApi struct {
	svc      *content.Service
	validate *validator.Validate
}

func registerContentAPI(g *echo.Group, svc *content.Service, validate *validator.Validate) {
	api := contentApi{svc: svc, validate: validate}

	bg := g.Group("/banners")
	bg.POST("", api.createBanner)
	bg.GET("", api.queryBanners)
	bg.DELETE("", api.destroyBanners)
	bg.GET("/:id", api.retrieveBanner)
	bg.PUT("/:id", api.updateBanner)
	bg.DELETE("/:id", api.destroyBanner)

	g.GET("/home-content", api.homeContent)
	g.PUT("/home-content", api.setHomeContent)
}

func (api *contentApi) createBanner(ctx echo.Context) error {
	var data content.NewBanner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewBanner")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	b, err := api.svc.CreateBanner(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating banner")
	}
	return ctx.JSON(http.StatusCreated, b)
}

func (api *contentApi) queryBanners(ctx echo.Context) error {
	banners, err := api.svc.QueryBanners(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying banners")
	}
	if banners == nil {
		banners = []content.Banner{}
	}
	return ctx.JSON(http.StatusOK, banners)
}

func (api *contentApi) retrieveBanner(ctx echo.Context) error {
	b, err := api.svc.GetBannerByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting banner")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *contentApi) updateBanner(ctx echo.Context) error {
	var data content.UpdateBanner
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateBanner")
	}

	orig, err := api.svc.GetBannerByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting banner")
	}
	if err = data.Validate(ctx.Request().Context(), orig, api.svc); err != nil {
		return err
	}

	b, err := api.svc.UpdateBanner(ctx.Request().Context(), orig.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating banner")
	}
	return ctx.JSON(http.StatusOK, b)
}

func (api *contentApi) destroyBanner(ctx echo.Context) error {
	if _, err := api.svc.GetBannerByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "getting banner")
	}
	if err := api.svc.DeleteBanners(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting banner")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) destroyBanners(ctx echo.Context) error {
	var data DeleteRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DeleteRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.DeleteBanners(ctx.Request().Context(), data.IDs...); err != nil {
		return errors.Wrap(err, "deleting banners")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *contentApi) homeContent(ctx echo.Context) error {
	hc, err := api.svc.HomeContent(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting home content")
	}
	return ctx.JSON(http.StatusOK, hc)
}

func (api *contentApi) setHomeContent(ctx echo.Context) error {
	var data content.UpdateHomeContent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateHomeContent")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	hc, err := api.svc.SetHomeContent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving home content")
	}
	return ctx.JSON(http.StatusOK, hc)
}
