package httperr

import (
	"github.com/gin-gonic/gin"
)

type Response struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func New(msg string) Response {
	var r Response
	r.Error.Message = msg
	return r
}

// AbortWithError answers with msg and keeps err on the context for ErrorHandler to log.
func AbortWithError(c *gin.Context, status int, err error, msg string) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}
	_ = c.Error(err).SetType(gin.ErrorTypePublic).SetMeta(msg)
	c.AbortWithStatusJSON(status, New(msg))
}
