package validators

import (
	"net"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(\d{2}\)\s\d{4,5}-\d{4}$`)
)

const minPhoneLength = 10

// ValidateEmail é propositalmente permissivo: algo@algo.algo, sem espaços.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone aceita "(DD) DDDD-DDDD", "(DD) DDDDD-DDDD" ou qualquer texto
// com pelo menos 10 caracteres. A segunda regra deixa passar coisas como
// "aaaaaaaaaa"; use ValidatePhoneStrict quando isso não for aceitável.
func ValidatePhone(phone string) bool {
	if phonePattern.MatchString(phone) {
		return true
	}
	return utf8.RuneCountInString(phone) >= minPhoneLength
}

// ValidatePhoneStrict exige ao menos 10 dígitos.
func ValidatePhoneStrict(phone string) bool {
	digits := 0
	for _, r := range phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneLength
}

// IsEmailDomainValid consulta MX/A do domínio. Faz I/O de rede.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
