package handler

import (
	"net/http"

	"github.com/eatsexchange/eats-exchange-server/internal/access"
	"github.com/eatsexchange/eats-exchange-server/internal/apierror"
	"github.com/eatsexchange/eats-exchange-server/internal/request"
	"github.com/eatsexchange/eats-exchange-server/internal/request/service"
	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/eatsexchange/eats-exchange-server/pkg/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRequestRoutes mounts the /requests endpoints.
func RegisterRequestRoutes(r *access.Router, svc service.Service) {
	r.POST("/requests", func(c *gin.Context) {
		var req request.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			apierror.Respond(c, apierror.BindError(err))
			return
		}
		logger.Debugf("create request food=%s requester=%s", req.FoodId, req.Requester.Email)
		ack, err := svc.Create(c.Request.Context(), &req)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})

	// A caller may only list their own requests.
	r.GET("/requests", func(c *gin.Context) {
		email := c.Query("email")
		if email == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not found"})
			return
		}
		if caller, _ := middleware.ClaimsEmail(c); caller != email {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Forbidden Access"})
			return
		}
		list, err := svc.ListForRequester(c.Request.Context(), email)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.GET("/requests/:FoodId", func(c *gin.Context) {
		list, err := svc.ListForFood(c.Request.Context(), c.Param("FoodId"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	})

	r.PATCH("/requests/:id", func(c *gin.Context) {
		var body request.StatusUpdate
		if err := c.ShouldBindJSON(&body); err != nil {
			apierror.Respond(c, apierror.BindError(err))
			return
		}
		logger.Debugf("request %s status=%s", c.Param("id"), body.Status)
		ack, err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})

	r.DELETE("/requests/:id", func(c *gin.Context) {
		ack, err := svc.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			apierror.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, ack)
	})
}
