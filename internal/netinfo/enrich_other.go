//go:build !linux

package netinfo

// Non-Linux builds ship the portable subset only: connection type comes
// from interface naming and the enriched fields stay absent.

func isWireless(string) bool { return false }

func linkSpeedMbps(string) *int { return nil }

func signalQuality(string) *int { return nil }

func currentSSID(string) string { return "" }
