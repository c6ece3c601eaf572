package handler

import (
	"net/http"

	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/listing"
	"github.com/eatsexchange/eats-exchange-server/internal/listing/service"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RegisterListingRoutes mounts the /foods endpoints. Whether a route is
// guarded is decided by the router's access policy.
func RegisterListingRoutes(r *access.Router, svc service.Service) {
	r.GET("/foods", func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), listing.ParseQuery(c.Request.URL.Query()))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/foods/:id", func(c *gin.Context) {
		l, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, l)
	})

	r.POST("/foods", func(c *gin.Context) {
		var l listing.Listing
		if err := c.ShouldBindJSON(&l); err != nil {
			apierror.Respond(c, apierror.BindError(err))
			return
		}
		logger.Debugf("create listing %q donator=%s", l.FoodName, l.Donator.Email)
		ack, err := svc.Create(c.Request.Context(), &l)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})

	r.PUT("/foods/:id", func(c *gin.Context) {
		var f listing.Fields
		if err := c.ShouldBindJSON(&f); err != nil {
			apierror.Respond(c, apierror.BindError(err))
			return
		}
		logger.Debugf("replace listing %s", c.Param("id"))
		ack, err := svc.Replace(c.Request.Context(), c.Param("id"), f)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})

	r.DELETE("/foods/:id", func(c *gin.Context) {
		ack, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})
}
