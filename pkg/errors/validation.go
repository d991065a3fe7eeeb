package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// txidRegex matches a 64-character lowercase hex transaction id.
var txidRegex = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateTxID validates a transaction id string.
// A txid must be exactly 64 lowercase hex characters.
func ValidateTxID(txid string) error {
	if txid == "" {
		return New(ErrCodeInvalidUTXO, "txid cannot be empty")
	}
	if !txidRegex.MatchString(txid) {
		return New(ErrCodeInvalidUTXO, "invalid txid: %q (must be 64 hex characters)", txid)
	}
	return nil
}

// ValidateAddress validates a destination address string for safety and
// plausibility. It does not perform full base58/bech32 checksum verification;
// that belongs to wallet software. The rules here are intentionally
// conservative:
//   - No empty addresses
//   - No control characters or whitespace
//   - Length between 14 and 90 characters (covers P2PKH through bech32m)
func ValidateAddress(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidAddress, "address cannot be empty")
	}

	if len(addr) < 14 || len(addr) > 90 {
		return New(ErrCodeInvalidAddress, "address length out of range: %q", addr)
	}

	for _, r := range addr {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidAddress, "address contains invalid characters: %q", addr)
		}
	}

	return nil
}

// ValidateAmount validates a satoshi amount.
// Amounts must be non-negative and within the 21M BTC supply cap.
func ValidateAmount(sats int64) error {
	const maxSupply = 21_000_000 * 100_000_000
	if sats < 0 {
		return New(ErrCodeInvalidAmount, "amount cannot be negative: %d", sats)
	}
	if sats > maxSupply {
		return New(ErrCodeInvalidAmount, "amount exceeds supply cap: %d", sats)
	}
	return nil
}

// ValidateTag validates a user-supplied tag string.
//
// Tags are free-form labels but must be printable, non-empty, and short
// enough for display and report columns.
func ValidateTag(tag string) error {
	if tag == "" {
		return New(ErrCodeInvalidInput, "tag cannot be empty")
	}
	if len(tag) > 64 {
		return New(ErrCodeInvalidInput, "tag too long (max 64 characters)")
	}
	for _, r := range tag {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "tag contains invalid control characters")
		}
	}
	return nil
}

// ValidateWalletName validates a wallet name used as a store key.
// It rejects names that could be used for path traversal when the name is
// mapped to a file in the file-backed store.
func ValidateWalletName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidWallet, "wallet name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidWallet, "wallet name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidWallet, "wallet name contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidWallet, "wallet name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// currencyRegex matches a three-letter ISO 4217 currency code.
var currencyRegex = regexp.MustCompile(`^[a-zA-Z]{3}$`)

// ValidateCurrency validates a fiat currency code (e.g. "usd", "eur").
func ValidateCurrency(code string) error {
	if !currencyRegex.MatchString(code) {
		return New(ErrCodeInvalidInput, "invalid currency code: %q", code)
	}
	return nil
}
