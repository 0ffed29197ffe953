package common

import (
	"encoding/json"
	"net/http"
)

// Status enumerates the outcome codes carried by every API response.
type Status string

const (
	StatusSuccess      Status = "Success"
	StatusFail         Status = "Fail"
	StatusUserNotFound Status = "UserNotFound"
	StatusAddUserFail  Status = "AddUserFail"
	StatusAddOrderFail Status = "AddOrderFail"
)

var statusMessages = map[Status]string{
	StatusSuccess:      "success",
	StatusFail:         "operation failed",
	StatusUserNotFound: "user not found",
	StatusAddUserFail:  "add user failed",
	StatusAddOrderFail: "add order failed",
}

// Describe returns the default human readable message for the status.
func (s Status) Describe() string {
	if msg, ok := statusMessages[s]; ok {
		return msg
	}
	return string(s)
}

// Response is the envelope returned by every endpoint.
type Response struct {
	Status  Status   `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Data    any      `json:"data,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Respond writes an envelope with the status' default message.
func Respond(w http.ResponseWriter, httpStatus int, status Status, data any) {
	JSON(w, httpStatus, Response{
		Status:  status,
		Message: status.Describe(),
		Data:    data,
	})
}

// RespondError renders a failure envelope, optionally carrying field errors.
func RespondError(w http.ResponseWriter, httpStatus int, status Status, message string, errs []string) {
	if message == "" {
		message = status.Describe()
	}
	JSON(w, httpStatus, Response{
		Status:  status,
		Message: message,
		Errors:  errs,
	})
}
