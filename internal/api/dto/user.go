package dto

// LoginReq 登录请求体
type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenDTO 登录/续期响应
type TokenDTO struct {
	Token string `json:"token"`
}
