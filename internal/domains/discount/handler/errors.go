package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

func handleServiceError(c *gin.Context, err error) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ValidationError(c, vErrs)
		return
	}

	if dErr, ok := model.AsDiscountError(err); ok {
		response.ErrorResponse(c, dErr.HTTPStatus, string(dErr.Code), dErr.Message)
		return
	}

	logger.Error("Discount request failed", err)
	response.InternalServerError(c)
}
