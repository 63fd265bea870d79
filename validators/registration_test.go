package validators

import (
	"errors"
	"testing"
)

func TestValidateRegistrationMissingFields(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		wantMsg string
	}{
		{"no email", map[string]any{"username": "bob", "password": "abc12"}, "Отсутствует поле: email"},
		{"no username", map[string]any{"email": "b@x.com", "password": "abc12"}, "Отсутствует поле: username"},
		// the password case names the username field; clients rely on the text
		{"no password", map[string]any{"email": "b@x.com", "username": "bob"}, "Отсутствует поле: username"},
		{"empty payload", map[string]any{}, "Отсутствует поле: email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRegistration(tt.payload)
			var ce *ClientError
			if !errors.As(err, &ce) {
				t.Fatalf("error = %v (%T), want *ClientError", err, err)
			}
			if ce.Msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", ce.Msg, tt.wantMsg)
			}
		})
	}
}

func TestValidateRegistrationNonStringField(t *testing.T) {
	_, err := ValidateRegistration(map[string]any{"email": "b@x.com", "username": "bob", "password": 12345.0})
	var ce *ClientError
	if !errors.As(err, &ce) {
		t.Fatalf("error = %v, want *ClientError", err)
	}
}

func TestValidateRegistrationPasswordRules(t *testing.T) {
	tests := []struct {
		password string
		wantErr  bool
	}{
		{"abcd", true},      // 4 chars
		{"ab12", true},      // 4 chars
		{"ab123", false},    // 5 chars
		{"abcde1 ", false},  // 7 chars with a space
		{"ABCdef12", false}, // 8 chars
		{"abcdefghi", true}, // 9 chars
		{"abc!1", true},     // bad char
		{"ab!", true},       // short and bad char
		{"пароль1", true},   // non-ASCII letters
		{"     ", false},    // spaces only
		{"abc_de", true},    // underscore
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			reg, err := ValidateRegistration(map[string]any{"email": "b@x.com", "username": "bob", "password": tt.password})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("error = %v, want nil", err)
				}
				if reg.Password != tt.password || reg.Username != "bob" || reg.Email != "b@x.com" {
					t.Errorf("registration = %+v", reg)
				}
				return
			}
			var be *BuggedClientError
			if !errors.As(err, &be) {
				t.Fatalf("error = %v (%T), want *BuggedClientError", err, err)
			}
		})
	}
}

func TestValidateRegistrationLengthCheckedBeforeCharacters(t *testing.T) {
	_, err := ValidateRegistration(map[string]any{"email": "b@x.com", "username": "bob", "password": "!!"})
	var be *BuggedClientError
	if !errors.As(err, &be) {
		t.Fatalf("error = %v, want *BuggedClientError", err)
	}
	if be.Msg != "Пароль не соответсвует требованиям по числу символов" {
		t.Errorf("message = %q", be.Msg)
	}

	_, err = ValidateRegistration(map[string]any{"email": "b@x.com", "username": "bob", "password": "abc!12"})
	if !errors.As(err, &be) || be.Msg != "Пароль не соответсвует требованиям: используются недопустимые символы" {
		t.Errorf("error = %v, want invalid characters message", err)
	}
}
