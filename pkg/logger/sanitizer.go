package logger

import "strings"

// sensitiveKeys 日志键名中出现这些片段时对值进行脱敏
var sensitiveKeys = []string{
	"token",
	"password",
	"passwd",
	"secret",
	"api_key",
	"apikey",
	"authorization",
}

// MaskToken 脱敏token字符串
// 规则:
//   - 空字符串返回空
//   - 长度<8: 返回 "***"
//   - 长度>=8: 保留前4后4,中间用星号替换
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) < 8 {
		return "***"
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// IsSensitiveKey 判断键名是否为敏感字段
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, sk := range sensitiveKeys {
		if strings.Contains(keyLower, sk) {
			return true
		}
	}
	return false
}

// SanitizeArgs 批量脱敏slog键值对参数 (key1, value1, key2, value2, ...)
func SanitizeArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	result := make([]any, len(args))
	copy(result, args)

	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok || !IsSensitiveKey(key) {
			continue
		}
		if s, ok := result[i+1].(string); ok {
			result[i+1] = MaskToken(s)
		} else {
			result[i+1] = "***MASKED***"
		}
	}

	return result
}
