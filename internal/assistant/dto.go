package assistant

type AskDTO struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Answer string `json:"answer"`
}
