package integration

type ConnectTrelloRequest struct {
	Token string `json:"token" validate:"required"`
}

type ConnectJiraRequest struct {
	BaseURL  string `json:"base_url" validate:"required,url"`
	Username string `json:"username" validate:"required"`
	APIToken string `json:"api_token" validate:"required"`
}
