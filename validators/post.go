package validators

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// MaxContentLen is the longest post body accepted, in characters.
const MaxContentLen = 256

// ValidatePost checks a raw create-post payload and returns the optional
// caller-chosen id and the content.
func ValidatePost(payload map[string]any) (*int, string, error) {
	var postID *int
	if raw, ok := payload["id"]; ok && raw != nil {
		id, ok := asInt(raw)
		if !ok {
			return nil, "", clientErr("Поле id имеет неверный тип")
		}
		postID = &id
	}

	raw, ok := payload["content"]
	if !ok {
		return nil, "", clientErr("Отсутствует поле content")
	}
	content, ok := raw.(string)
	if !ok {
		return nil, "", clientErr("Поле content не является строкой")
	}
	if utf8.RuneCountInString(content) > MaxContentLen {
		return nil, "", clientErr("Поле content имеет неверный размер")
	}
	return postID, content, nil
}

// asInt accepts integer literals only; payloads are decoded with UseNumber,
// so 1.0 and 1e3 arrive as json.Number and are rejected here.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case json.Number:
		if strings.ContainsAny(string(n), ".eE") {
			return 0, false
		}
		i, err := n.Int64()
		if err != nil || int64(int(i)) != i {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}
