package domain

const accountMaskPrefix = "xxxxxxxxxxxx"

// MaskAccountNumber returns the display-safe account form regardless of
// whether the ciphertext blob is present, absent or purged.
func MaskAccountNumber(last4 string) string {
	return accountMaskPrefix + last4
}

// MaskSSN keeps only the last 4 digits of a social security number.
func MaskSSN(ssn string) string {
	digits := DigitsOnly(ssn)
	if len(digits) < 4 {
		return "xxx-xx-xxxx"
	}
	return "xxx-xx-" + digits[len(digits)-4:]
}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

// Last4 returns the trailing 4 digits of an account number.
func Last4(accountNumber string) string {
	digits := DigitsOnly(accountNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
