package snmp

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// NormalizeMAC accepts the common MAC spellings (AA:BB:CC:DD:EE:FF,
// aa-bb-cc-dd-ee-ff, aabbccddeeff) and returns the canonical lower-case
// colon form. All spellings of the same address normalize to the same key.
func NormalizeMAC(s string) (string, error) {
	octets, err := macOctets(s)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(octets))
	for i, b := range octets {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, ":"), nil
}

// macOIDSuffix renders a MAC as the dotted-decimal OID suffix used to index
// BRIDGE-MIB FDB rows (e.g. aa:bb:cc:dd:ee:ff -> "170.187.204.221.238.255").
func macOIDSuffix(s string) (string, error) {
	octets, err := macOctets(s)
	if err != nil {
		return "", err
	}

	parts := make([]string, len(octets))
	for i, b := range octets {
		parts[i] = strconv.Itoa(int(b))
	}
	return strings.Join(parts, "."), nil
}

func macOctets(s string) ([]byte, error) {
	cleaned := strings.ToLower(strings.NewReplacer(":", "", "-", "", ".", "").Replace(strings.TrimSpace(s)))
	if len(cleaned) != 12 {
		return nil, fmt.Errorf("invalid mac address %q: want 6 byte pairs", s)
	}

	octets, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid mac address %q: %w", s, err)
	}
	return octets, nil
}
