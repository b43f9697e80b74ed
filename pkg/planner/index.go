package planner

import "strconv"

// Fingerprint is the identity used to match files between trees: the base
// name followed by the byte size. Two files with the same name and size are
// treated as the same file regardless of content or location.
func Fingerprint(fd FileDescriptor) string {
	return fd.Name + strconv.FormatInt(fd.Size, 10)
}

// Index maps fingerprints to descriptors. When two descriptors share a
// fingerprint the later one wins, while the key keeps the position of its
// first insertion.
type Index struct {
	keys   []string
	values map[string]FileDescriptor
}

func NewIndex(files []FileDescriptor) *Index {
	idx := &Index{
		keys:   make([]string, 0, len(files)),
		values: make(map[string]FileDescriptor, len(files)),
	}
	for _, fd := range files {
		idx.Put(fd)
	}
	return idx
}

func (idx *Index) Put(fd FileDescriptor) {
	key := Fingerprint(fd)
	if _, exists := idx.values[key]; !exists {
		idx.keys = append(idx.keys, key)
	}
	idx.values[key] = fd
}

func (idx *Index) Has(key string) bool {
	_, ok := idx.values[key]
	return ok
}

// Len is the number of distinct fingerprints.
func (idx *Index) Len() int {
	return len(idx.keys)
}

// Values returns the indexed descriptors in insertion order.
func (idx *Index) Values() []FileDescriptor {
	values := make([]FileDescriptor, 0, len(idx.keys))
	for _, key := range idx.keys {
		values = append(values, idx.values[key])
	}
	return values
}
