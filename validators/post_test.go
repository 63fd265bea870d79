package validators

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestValidatePost(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantID  *int
		wantErr string
	}{
		{"content only", map[string]any{"content": "hi"}, nil, ""},
		{"with id", map[string]any{"id": json.Number("7"), "content": "hi"}, intPtr(7), ""},
		{"null id", map[string]any{"id": nil, "content": "hi"}, nil, ""},
		{"plain int id", map[string]any{"id": 3, "content": "hi"}, intPtr(3), ""},
		{"negative id", map[string]any{"id": json.Number("-4"), "content": "hi"}, intPtr(-4), ""},
		{"id above int32", map[string]any{"id": json.Number("3000000000"), "content": "hi"}, intPtr(3000000000), ""},
		{"decimal literal id", map[string]any{"id": json.Number("1.0"), "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"exponent literal id", map[string]any{"id": json.Number("1e3"), "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"id beyond int64", map[string]any{"id": json.Number("99999999999999999999"), "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"float id", map[string]any{"id": 7.0, "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"string id", map[string]any{"id": "7", "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"fractional id", map[string]any{"id": json.Number("1.5"), "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"bool id", map[string]any{"id": true, "content": "hi"}, nil, "Поле id имеет неверный тип"},
		{"no content", map[string]any{"id": json.Number("1")}, nil, "Отсутствует поле content"},
		{"numeric content", map[string]any{"content": json.Number("12")}, nil, "Поле content не является строкой"},
		{"256 chars", map[string]any{"content": strings.Repeat("я", 256)}, nil, ""},
		{"257 chars", map[string]any{"content": strings.Repeat("a", 257)}, nil, "Поле content имеет неверный размер"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, content, err := ValidatePost(tt.payload)
			if tt.wantErr != "" {
				var ce *ClientError
				if !errors.As(err, &ce) || ce.Msg != tt.wantErr {
					t.Fatalf("error = %v, want ClientError %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if content != tt.payload["content"] {
				t.Errorf("content = %q", content)
			}
			switch {
			case tt.wantID == nil && id != nil:
				t.Errorf("id = %d, want nil", *id)
			case tt.wantID != nil && (id == nil || *id != *tt.wantID):
				t.Errorf("id = %v, want %d", id, *tt.wantID)
			}
		})
	}
}

func intPtr(v int) *int { return &v }
