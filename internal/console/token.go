package console

import (
	"sort"
	"strings"
)

// tokenPaths известные места токена в ответе на вход.
var tokenPaths = [][]string{
	{"token"},
	{"access_token"},
	{"accessToken"},
	{"jwt"},
	{"user", "jwtToken"},
	{"user", "user", "jwtToken"},
	{"user", "token"},
	{"user", "user", "token"},
}

// extractToken ищет токен по известным путям. Если scan включён и токен
// не найден, рекурсивно обходит ответ в поисках строки, похожей на JWT.
// TODO: убрать scan, когда формат ответа на вход будет зафиксирован в удалённом API.
func extractToken(data map[string]any, scan bool) string {
	for _, path := range tokenPaths {
		if s, found := lookup(data, path); found && s != "" {
			return s
		}
	}
	if !scan {
		return ""
	}
	return scanForJWT(data)
}

func lookup(m map[string]any, path []string) (string, bool) {
	var cur any = m
	for _, key := range path {
		obj, isMap := cur.(map[string]any)
		if !isMap {
			return "", false
		}
		cur = obj[key]
	}
	s, isStr := cur.(string)
	return s, isStr
}

// looksLikeJWT грубая проверка формы: три сегмента через точку и длина больше 50.
func looksLikeJWT(s string) bool {
	return len(s) > 50 && len(strings.Split(s, ".")) == 3
}

// scanForJWT обходит значения в порядке сортировки ключей, чтобы результат
// не зависел от порядка обхода map.
func scanForJWT(v any) string {
	switch t := v.(type) {
	case string:
		if looksLikeJWT(t) {
			return t
		}
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := scanForJWT(t[k]); s != "" {
				return s
			}
		}
	case []any:
		for _, item := range t {
			if s := scanForJWT(item); s != "" {
				return s
			}
		}
	}
	return ""
}
