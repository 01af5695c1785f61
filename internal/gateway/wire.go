package gateway

type ackRequest struct {
	Count int `json:"count"`
}

type imageResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}
