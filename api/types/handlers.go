package types

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "github.com/killallgit/podradio/pkg/errors"
)

// SendAppError writes err as an ErrorResponse using its AppError code when present
func SendAppError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Status:  StatusError,
		Message: err.Error(),
		Error:   string(apperrors.GetCode(err)),
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		resp.Message = appErr.Message
		if len(appErr.Details) > 0 {
			resp.Details = appErr.Details
		}
	}

	c.JSON(apperrors.GetHTTPCode(err), resp)
}
