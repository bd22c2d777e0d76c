package index

// dictionary interns names of one kind into dense IDs. IDs are assigned in
// insertion order and never reused; nothing is ever removed.
type dictionary struct {
	ids   map[string]uint32
	names []string
}

func newDictionary() *dictionary {
	return &dictionary{ids: make(map[string]uint32)}
}

func (d *dictionary) lookup(name string) (uint32, bool) {
	id, ok := d.ids[name]
	return id, ok
}

func (d *dictionary) intern(name string) uint32 {
	if id, ok := d.ids[name]; ok {
		return id
	}
	id := uint32(len(d.names))
	d.ids[name] = id
	d.names = append(d.names, name)
	return id
}

func (d *dictionary) name(id uint32) string {
	return d.names[id]
}

func (d *dictionary) len() int {
	return len(d.names)
}
