package validators

import "unicode/utf8"

const (
	minPasswordLen = 5
	maxPasswordLen = 8
)

// Registration is a validated sign-up request.
type Registration struct {
	Email    string
	Username string
	Password string
}

// ValidateRegistration checks a raw sign-up payload.
// Missing fields yield ClientError; password rule violations yield BuggedClientError.
func ValidateRegistration(payload map[string]any) (Registration, error) {
	if _, ok := payload["email"]; !ok {
		return Registration{}, clientErr("Отсутствует поле: email")
	}
	if _, ok := payload["username"]; !ok {
		return Registration{}, clientErr("Отсутствует поле: username")
	}
	if _, ok := payload["password"]; !ok {
		// Reports username on purpose; existing clients match on this text.
		return Registration{}, clientErr("Отсутствует поле: username")
	}

	var reg Registration
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"email", &reg.Email},
		{"username", &reg.Username},
		{"password", &reg.Password},
	} {
		s, ok := payload[f.key].(string)
		if !ok {
			return Registration{}, clientErr("Поле " + f.key + " не является строкой")
		}
		*f.dst = s
	}

	if n := utf8.RuneCountInString(reg.Password); n < minPasswordLen || n > maxPasswordLen {
		return Registration{}, buggedErr("Пароль не соответсвует требованиям по числу символов")
	}
	for _, r := range reg.Password {
		if !passwordRune(r) {
			return Registration{}, buggedErr("Пароль не соответсвует требованиям: используются недопустимые символы")
		}
	}
	return reg, nil
}

// passwordRune allows ASCII letters, digits and space.
func passwordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == ' ':
		return true
	}
	return false
}
