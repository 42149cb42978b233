package am

import "strings"

// Source is the read-only key/value view the resolvers consume.
//
// *viper.Viper satisfies it, so callers usually pass GetViper() or an isolated
// viper.New() in tests. Keys use dot notation and are case-insensitive.
type Source interface {
	IsSet(key string) bool
	GetString(key string) string
	GetInt(key string) int
	GetBool(key string) bool
}

// IsBlank reports whether key is unset or holds only whitespace
func IsBlank(src Source, key string) bool {
	return strings.TrimSpace(src.GetString(key)) == ""
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}
