package models

// Response is the JSON envelope returned by every /api endpoint.
type Response struct {
	Success bool   `json:"success"`
	Count   *int   `json:"count,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// DataResponse wraps a single resource.
func DataResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// ListResponse wraps a collection together with its size.
func ListResponse[T any](items []T) Response {
	if items == nil {
		items = []T{}
	}
	count := len(items)
	return Response{Success: true, Count: &count, Data: items}
}

// MessageResponse is a successful response carrying only a confirmation message.
func MessageResponse(message string) Response {
	return Response{Success: true, Message: message}
}

// ErrorResponse is the envelope for every failed request.
func ErrorResponse(message string) Response {
	return Response{Success: false, Message: message}
}
