// Package getsafe pulls typed values out of loosely typed payloads, such
// as vector store point payloads decoded from JSON.
package getsafe

func String(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}

	s, ok := v.(string)
	if !ok {
		return ""
	}

	return s
}

func Metadata(payload map[string]any, key string) map[string]any {
	v, ok := payload[key]
	if !ok {
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}

	return m
}
