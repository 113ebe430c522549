package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/tuitionlk/portal/core/content"
	"github.com/tuitionlk/portal/core/stats"
)

// publicApi serves the unauthenticated home page data.
type publicApi struct {
	contentSvc *content.Service
	statsSvc   *stats.Service
}

func registerPublicAPI(g *echo.Group, contentSvc *content.Service, statsSvc *stats.Service) {
	api := publicApi{contentSvc: contentSvc, statsSvc: statsSvc}

	g.GET("/banners", api.activeBanners)
	g.GET("/home-content", api.homeContent)
	g.GET("/stats", api.usageStats)
}

func (api *publicApi) activeBanners(ctx echo.Context) error {
	banners, err := api.contentSvc.ActiveBanners(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying active banners")
	}
	if banners == nil {
		banners = []content.Banner{}
	}
	return ctx.JSON(http.StatusOK, banners)
}

func (api *publicApi) homeContent(ctx echo.Context) error {
	hc, err := api.contentSvc.HomeContent(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting home content")
	}
	return ctx.JSON(http.StatusOK, hc)
}

func (api *publicApi) usageStats(ctx echo.Context) error {
	st, err := api.statsSvc.Usage(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting usage stats")
	}
	return ctx.JSON(http.StatusOK, st)
}
