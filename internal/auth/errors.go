package auth

import "errors"

// 鉴权失败的哨兵错误。错误文本即返回给客户端的 detail
var (
	ErrMissingToken = errors.New("Missing authentication token")
	ErrTokenExpired = errors.New("Token has expired")
	ErrTokenInvalid = errors.New("Invalid token")
	ErrUserNotFound = errors.New("User not found")
)
