package cache

import "strings"

const (
	GlobalKeyPrefix = "careerpath"
)

// GenerateCacheKey builds "careerpath:<service>:<object>:<id>" keys, with
// optional params joined by "_" as a trailing segment.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}
