package domain

// AddressLookup maps every address resolved from the wallet's descriptors
// back to the descriptor it comes from.
type AddressLookup struct {
	entries map[string]AddressDescriptor
}

// NewAddressLookup builds the lookup out of two parallel lists. When the same
// address shows up more than once, the last descriptor wins; the overwritten
// addresses are returned so that the caller can report them.
func NewAddressLookup(
	addresses []string, descriptors []AddressDescriptor,
) (AddressLookup, []string, error) {
	if len(addresses) != len(descriptors) {
		return AddressLookup{}, nil, ErrMismatchingDescriptorsLength
	}

	entries := make(map[string]AddressDescriptor, len(addresses))
	var duplicates []string
	for i, addr := range addresses {
		if _, ok := entries[addr]; ok {
			duplicates = append(duplicates, addr)
		}
		entries[addr] = descriptors[i]
	}
	return AddressLookup{entries}, duplicates, nil
}

// Get returns the descriptor for the given address, if any.
func (l AddressLookup) Get(address string) (AddressDescriptor, bool) {
	d, ok := l.entries[address]
	return d, ok
}

func (l AddressLookup) Len() int {
	return len(l.entries)
}
