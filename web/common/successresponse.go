package common

// SuccessResponse is the envelope for single-object replies. Every
// timesheet endpoint that returns one record or a status message wraps
// it under "data" so clients can unmarshal uniformly.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}
