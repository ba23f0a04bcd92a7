package schema

import (
	"fmt"
	"strconv"
	"strings"
)

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func msgRequired(name string) string {
	return fmt.Sprintf(`The field "%s" has not been provided.`, name)
}

func msgType(name string, k Kind) string {
	return fmt.Sprintf(`The field "%s" must be of type %s.`, name, k)
}

func msgBetween(name string, lo, hi float64) string {
	return fmt.Sprintf(`The field "%s" must be between %s and %s.`, name, num(lo), num(hi))
}

func msgAtLeast(name string, lo float64) string {
	return fmt.Sprintf(`The field "%s" must be at least %s.`, name, num(lo))
}

func msgLessThan(name string, hi float64) string {
	return fmt.Sprintf(`The field "%s" must be less than %s.`, name, num(hi))
}

func msgInteger(name string) string {
	return fmt.Sprintf(`The field "%s" must be an integer.`, name)
}

func msgOption(name string) string {
	return fmt.Sprintf(`The field "%s" is not a valid option.`, name)
}

func msgLenBetween(name string, lo, hi int) string {
	return fmt.Sprintf(`The field "%s" must be between %d and %d characters.`, name, lo, hi)
}

func msgLenAtLeast(name string, lo int) string {
	return fmt.Sprintf(`The field "%s" must be at least %d characters.`, name, lo)
}

func msgLenLessThan(name string, hi int) string {
	return fmt.Sprintf(`The field "%s" must be less than %d characters.`, name, hi)
}

func msgFormat(name, message string) string {
	return fmt.Sprintf(`The field "%s" %s.`, name, message)
}

func msgNotA(name, what string) string {
	return fmt.Sprintf(`The field "%s" must be %s.`, name, what)
}

// msgCheck terminates a custom check message with a period unless it
// already ends with one.
func msgCheck(message string) string {
	if strings.HasSuffix(message, ".") {
		return message
	}
	return message + "."
}
