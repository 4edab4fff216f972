package response

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Wallet   int64  `json:"wallet"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
