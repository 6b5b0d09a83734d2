package ftpengine

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

var (
	// systemRegex matches the SYST reply text: 215 UNIX Type: L8
	systemRegex = regexp.MustCompile(`(\w+) (?i:type): (\w+)`)

	// pasvRegex matches the PASV reply text: 227 Entering Passive Mode (h1,h2,h3,h4,p1,p2)
	pasvRegex = regexp.MustCompile(`\((\d+),(\d+),(\d+),(\d+),(\d+),(\d+)\)`)
)

// parsePathname extracts the quoted directory from a 257 reply.
// Example: `"/pub/FreeBSD" is the current directory`
// Inside the quotes a doubled quote stands for a literal one.
func parsePathname(text string) (string, error) {
	start := strings.IndexByte(text, '"')
	if start < 0 {
		return "", &GarbageError{Reason: "pathname", Line: text}
	}

	var b strings.Builder
	for i := start + 1; i < len(text); i++ {
		if text[i] != '"' {
			b.WriteByte(text[i])
			continue
		}
		if i+1 < len(text) && text[i+1] == '"' {
			b.WriteByte('"')
			i++
			continue
		}
		if b.Len() == 0 {
			return "", &GarbageError{Reason: "pathname", Line: text}
		}
		return b.String(), nil
	}
	return "", &GarbageError{Reason: "pathname", Line: text}
}

// parseSystem extracts the system name and subtype from a 215 reply.
func parseSystem(text string) (SystemIdentity, error) {
	matches := systemRegex.FindStringSubmatch(text)
	if len(matches) != 3 {
		return SystemIdentity{}, &GarbageError{Reason: "system type", Line: text}
	}
	return SystemIdentity{Name: matches[1], Subtype: matches[2]}, nil
}

// parsePASV parses a 227 reply and returns the endpoint it announces.
// Example: "Entering Passive Mode (192,168,1,1,195,149)"
// Returns: 192.168.1.1:50069 (195*256 + 149 = 50069)
func parsePASV(text string) (netip.AddrPort, error) {
	matches := pasvRegex.FindStringSubmatch(text)
	if len(matches) != 7 {
		return netip.AddrPort{}, &GarbageError{Reason: "passive address", Line: text}
	}

	var parts [6]byte
	for i := range parts {
		val, err := strconv.ParseUint(matches[i+1], 10, 8)
		if err != nil {
			return netip.AddrPort{}, &GarbageError{Reason: "passive address part " + matches[i+1], Line: text}
		}
		parts[i] = byte(val)
	}

	addr := netip.AddrFrom4([4]byte{parts[0], parts[1], parts[2], parts[3]})
	port := uint16(parts[4])*256 + uint16(parts[5])
	return netip.AddrPortFrom(addr, port), nil
}
