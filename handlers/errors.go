package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vikas-mobiles/be/models"
)

const (
	codeRemoteError     = "REMOTE_ERROR"
	codeOrderProcessing = "ORDER_PROCESSING_ERROR"
)

// respondError maps err onto the error taxonomy. remoteCode is the error code
// used when the commerce API failed. Remote 404s become NOT_FOUND only for
// codeRemoteError calls; order submission keeps its own code.
func respondError(c *gin.Context, err error, remoteCode, remoteMessage string) {
	_ = c.Error(err)

	var verr *models.ValidationError
	if errors.As(err, &verr) {
		code := "INVALID_INPUT"
		switch verr.Field {
		case "products":
			code = "EMPTY_CART"
		case "stock":
			code = "OUT_OF_STOCK"
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   code,
			Message: verr.Message,
			Details: verr.Error(),
		})
		return
	}

	var rerr *models.RemoteError
	if errors.As(err, &rerr) {
		if rerr.StatusCode == http.StatusNotFound && remoteCode == codeRemoteError {
			notFound(c, "Resource not found")
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   remoteCode,
			Message: remoteMessage,
			Details: rerr.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: "Unexpected error",
	})
}

func badRequest(c *gin.Context, message string, err error) {
	resp := models.ErrorResponse{Error: "INVALID_INPUT", Message: message}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "NOT_FOUND",
		Message: message,
	})
}
