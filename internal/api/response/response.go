package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope of every API reply.
type Response struct {
	Code int    `json:"code"`
	Data any    `json:"data"`
	Msg  string `json:"message"`
}

// Business codes.
const (
	SUCCESS          = 0
	ERROR            = -1
	NOT_FOUND        = 40400
	VALIDATION_ERROR = 40001
	UNPROCESSABLE    = 42201
)

var codeMessages = map[int]string{
	SUCCESS:          "ok",
	ERROR:            "internal error",
	NOT_FOUND:        "not found",
	VALIDATION_ERROR: "invalid input",
	UNPROCESSABLE:    "cannot compute schedule",
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code: SUCCESS,
		Data: data,
		Msg:  codeMessages[SUCCESS],
	})
}

func Error(c *gin.Context, code int, msg string) {
	ErrorWithData(c, code, msg, nil)
}

func ErrorWithData(c *gin.Context, code int, msg string, data any) {
	if msg == "" {
		msg = codeMessages[code]
	}
	c.JSON(httpStatus(code), Response{
		Code: code,
		Data: data,
		Msg:  msg,
	})
}

func httpStatus(code int) int {
	switch code {
	case SUCCESS:
		return http.StatusOK
	case NOT_FOUND:
		return http.StatusNotFound
	case VALIDATION_ERROR:
		return http.StatusBadRequest
	case UNPROCESSABLE:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
