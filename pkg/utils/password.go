package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword 加盐单向哈希，同一明文每次结果不同
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword 目前没有 handler 调用，留给后续登录校验
func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
