// Package reference генерирует публичные номера бронирований.
// Номер используется клиентом для поиска и отмены бронирования вместо
// внутреннего числового ID.
package reference

import (
	"crypto/rand"
	"fmt"
)

// Prefix префикс всех номеров бронирований
const Prefix = "BK"

// tokenLength длина случайной части номера
const tokenLength = 8

// Length полная длина номера бронирования
const Length = len(Prefix) + tokenLength

// Алфавит без неоднозначных символов (0/O, 1/I/L)
const alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// New генерирует новый номер бронирования вида "BKX7Q2M9RT".
// Случайная часть берется из crypto/rand; при коллизии по уникальному
// индексу вызывающая сторона должна сгенерировать номер заново.
func New() (string, error) {
	buf := make([]byte, tokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reference: failed to read random bytes: %w", err)
	}

	token := make([]byte, tokenLength)
	for i, b := range buf {
		token[i] = alphabet[int(b)%len(alphabet)]
	}

	return Prefix + string(token), nil
}

// IsValid проверяет, что строка похожа на номер бронирования
func IsValid(ref string) bool {
	if len(ref) != Length {
		return false
	}
	if ref[:len(Prefix)] != Prefix {
		return false
	}
	for i := len(Prefix); i < len(ref); i++ {
		if !isAlphabetChar(ref[i]) {
			return false
		}
	}
	return true
}

func isAlphabetChar(c byte) bool {
	for i := 0; i < len(alphabet); i++ {
		if alphabet[i] == c {
			return true
		}
	}
	return false
}
