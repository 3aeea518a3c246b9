package dto

// LoginReq represents the request body for the /login endpoint.
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRes carries the access token and the logged-in user.
type LoginRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}
