package response

import "github.com/gin-gonic/gin"

// Machine-readable failure kinds. Success responses carry the resource
// itself; only failures use the envelope.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeDuplicateEmail  = "DUPLICATE_EMAIL"
	CodeNoSuchAccount   = "NO_SUCH_ACCOUNT"
	CodeWrongPassword   = "WRONG_PASSWORD"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeUserNotFound    = "USER_NOT_FOUND"
	CodeProjectNotFound = "PROJECT_NOT_FOUND"
	CodeInternal        = "INTERNAL"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Error(c *gin.Context, httpStatus int, code, message string) {
	c.JSON(httpStatus, ErrorBody{
		Code:    code,
		Message: message,
	})
}
