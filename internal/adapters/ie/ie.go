package ie

import (
	"errors"
	"fmt"

	"github.com/lcalzada-xor/s1gap/internal/core/domain"
)

// Common IE Tags
const (
	TagSSID            = 0
	TagSupportedRates  = 1
	TagS1GCapabilities = 217
	TagS1GOperation    = 232
	TagVendorSpecific  = 221
)

// Errors
var (
	ErrMalformedIE = errors.New("malformed information element")
	ErrIENotFound  = errors.New("information element not found")
)

// IterateIEs calls the provided callback for each valid IE found in the data.
// It stops if it encounters a malformed IE (length exceeds remaining data).
func IterateIEs(data []byte, callback func(id int, data []byte)) {
	offset := 0
	limit := len(data)

	for offset+2 <= limit {
		id := int(data[offset])
		length := int(data[offset+1])
		offset += 2

		if offset+length > limit {
			break
		}

		callback(id, data[offset:offset+length])
		offset += length
	}
}

// FindIE returns the data of the first IE with the given ID.
// Returns nil if not found.
func FindIE(data []byte, targetID int) []byte {
	var result []byte
	found := false
	IterateIEs(data, func(id int, val []byte) {
		if !found && id == targetID {
			result = val
			found = true
		}
	})
	return result
}

// S1GCapabilities returns the raw S1G Capabilities element body. It returns
// (nil, nil) when the element is absent and ErrMalformedIE when the element
// is not exactly domain.S1GCapabilitiesLen bytes.
func S1GCapabilities(data []byte) ([]byte, error) {
	var (
		body  []byte
		found bool
	)
	IterateIEs(data, func(id int, val []byte) {
		if !found && id == TagS1GCapabilities {
			body, found = val, true
		}
	})
	if !found {
		return nil, nil
	}
	if len(body) != domain.S1GCapabilitiesLen {
		return nil, fmt.Errorf("%w: S1G capabilities length %d", ErrMalformedIE, len(body))
	}
	return body, nil
}

// ParseSSID extracts the SSID from the IE data. An empty string means a
// wildcard (or hidden) SSID.
func ParseSSID(data []byte) (string, error) {
	val := FindIE(data, TagSSID)
	if val == nil {
		return "", ErrIENotFound
	}
	return safeString(val), nil
}

func safeString(b []byte) string {
	out := make([]rune, 0, len(b))
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			out = append(out, '.')
			continue
		}
		out = append(out, rune(c))
	}
	return string(out)
}
