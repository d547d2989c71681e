package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response.
// Code carries the court error kind when there is one.
type MessageError struct {
	Message string
	Error   string
	Code    string `json:"Code,omitempty"`
}
