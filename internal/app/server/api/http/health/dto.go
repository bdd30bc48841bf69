package health

type healthInput struct{}

type healthOutput struct {
	Body healthResponse
}

type healthResponse struct {
	Status string `json:"status" example:"OK" doc:"Service liveness"`
}
