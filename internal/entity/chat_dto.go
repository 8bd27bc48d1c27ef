package entity

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Query string `json:"query"`
}

// ChatResponse carries the final, safety-gated answer.
type ChatResponse struct {
	Answer string `json:"answer"`
}
