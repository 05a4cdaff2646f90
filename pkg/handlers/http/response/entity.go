package response

import (
	"encoding/json"
	"net/http"
)

// Entity is the JSON envelope every ParamGuard error and admin reply uses.
type Entity struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func New(code int, message string, data interface{}) *Entity {
	return &Entity{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func OK(data interface{}) *Entity {
	return New(http.StatusOK, http.StatusText(http.StatusOK), data)
}

func Unauthorized(message string) *Entity {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *Entity {
	return New(http.StatusForbidden, message, nil)
}

func BadRequest(message string) *Entity {
	return New(http.StatusBadRequest, message, nil)
}

func TooLarge(message string) *Entity {
	return New(http.StatusRequestEntityTooLarge, message, nil)
}

func NotFound(message string) *Entity {
	return New(http.StatusNotFound, message, nil)
}

func InternalError(message string) *Entity {
	return New(http.StatusInternalServerError, message, nil)
}

func (e *Entity) JSON() ([]byte, error) {
	return json.Marshal(e)
}
