//go:build linux

package netinfo

import (
	"bufio"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// isWireless reports whether the kernel exposes a wireless extension
// directory for the interface.
func isWireless(name string) bool {
	_, err := os.Stat("/sys/class/net/" + name + "/wireless")
	return err == nil
}

// linkSpeedMbps reads the negotiated link speed from sysfs. Interfaces that
// are down or virtual report -1 or nothing; both are treated as absent.
func linkSpeedMbps(name string) *int {
	data, err := os.ReadFile("/sys/class/net/" + name + "/speed")
	if err != nil {
		return nil
	}
	speed, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || speed <= 0 {
		return nil
	}
	return &speed
}

// signalQuality parses /proc/net/wireless and converts the link quality
// column (0-70 scale) to a percentage.
func signalQuality(name string) *int {
	f, err := os.Open("/proc/net/wireless")
	if err != nil {
		return nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 || !strings.HasPrefix(fields[0], name+":") {
			continue
		}
		quality, err := strconv.ParseFloat(strings.TrimSuffix(fields[2], "."), 64)
		if err != nil {
			return nil
		}
		percent := int(quality / 70 * 100)
		if percent > 100 {
			percent = 100
		}
		return &percent
	}
	return nil
}

// currentSSID asks iwgetid for the associated network name. Best effort:
// missing tool or unassociated interface yields absent.
func currentSSID(name string) string {
	out, err := exec.Command("iwgetid", "-r", name).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
