package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is a BIP32 path relative to the node it's applied to.
// In JSON it's either an array of indexes or a string like "m/0/5".
type DerivationPath []uint32

// ParseDerivationPath parses paths in the "m/0/5" or "0/5" form. Hardened
// components are marked with a trailing ' or h.
func ParseDerivationPath(str string) (DerivationPath, error) {
	str = strings.TrimSpace(str)
	if len(str) <= 0 {
		return nil, ErrNullDerivationPath
	}

	components := strings.Split(str, "/")
	if strings.TrimSpace(components[0]) == "m" {
		components = components[1:]
	}
	if len(components) <= 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(components))
	for _, c := range components {
		index, err := parsePathComponent(c)
		if err != nil {
			return nil, err
		}
		path = append(path, index)
	}
	return path, nil
}

func parsePathComponent(c string) (uint32, error) {
	c = strings.TrimSpace(c)
	offset := uint32(0)
	if strings.HasSuffix(c, "'") || strings.HasSuffix(c, "h") {
		offset = hdkeychain.HardenedKeyStart
		c = strings.TrimSpace(c[:len(c)-1])
	}
	if len(c) <= 0 {
		return 0, ErrMalformedDerivationPath
	}

	index, err := strconv.ParseUint(c, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedDerivationPath, c)
	}
	if offset > 0 && index >= uint64(hdkeychain.HardenedKeyStart) {
		return 0, fmt.Errorf(
			"%w: hardened index %d out of range", ErrMalformedDerivationPath, index,
		)
	}
	return uint32(index) + offset, nil
}

// String returns the path in the "m/0/5'" form.
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("m")
	for _, index := range path {
		b.WriteString("/")
		if index >= hdkeychain.HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-hdkeychain.HardenedKeyStart), 10))
			b.WriteString("'")
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return b.String()
}

// IsHardened returns whether any of the path's components is hardened.
func (path DerivationPath) IsHardened() bool {
	for _, index := range path {
		if index >= hdkeychain.HardenedKeyStart {
			return true
		}
	}
	return false
}

func (path *DerivationPath) UnmarshalJSON(buf []byte) error {
	buf = bytes.TrimSpace(buf)
	if len(buf) > 0 && buf[0] == '"' {
		var str string
		if err := json.Unmarshal(buf, &str); err != nil {
			return err
		}
		parsed, err := ParseDerivationPath(str)
		if err != nil {
			return err
		}
		*path = parsed
		return nil
	}

	var indexes []uint32
	if err := json.Unmarshal(buf, &indexes); err != nil {
		return err
	}
	*path = indexes
	return nil
}
