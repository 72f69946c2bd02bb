package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	statusCode int

	Msg string `json:"error"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(statusCode int, msg string) *Err {
	return &Err{
		statusCode: statusCode,
		Msg:        msg,
	}
}

func ErrBadRequest(err error) *Err {
	return NewErr(http.StatusBadRequest, err.Error())
}

func ErrUnauthorized(msg string) *Err {
	return NewErr(http.StatusUnauthorized, msg)
}

func ErrWrongCredentials(err error) *Err {
	return NewErr(http.StatusUnauthorized, err.Error())
}

func ErrPermissionDenied(err error) *Err {
	return NewErr(http.StatusForbidden, err.Error())
}

func ErrNotFound(resource, key string, value any) *Err {
	return NewErr(http.StatusNotFound, fmt.Sprintf("%v not found by %v (%v)", resource, key, value))
}

func ErrInternalServerError(err error) *Err {
	return NewErr(http.StatusInternalServerError, err.Error())
}

// RenderErr writes the error response. Server-side failures are logged
// with the request id and masked in the payload.
func RenderErr(ctx *gin.Context, e *Err) {
	if e.statusCode >= http.StatusInternalServerError {
		zap.L().Error(e.Msg,
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()))

		e.Msg = "internal server error"
	}

	ctx.AbortWithStatusJSON(e.statusCode, e)
}
