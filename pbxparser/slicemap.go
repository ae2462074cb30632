package pbxparser

type mapItem struct {
	data interface{}
	idx  int
}

type SliceItem struct {
	key  string
	data interface{}
}

func (s SliceItem) Key() string {
	return s.key
}

func (s SliceItem) Value() interface{} {
	return s.data
}

// SliceMap is a map that remembers insertion order. pbxproj files are
// hand-merged by developers, so the writer must emit keys in the order they
// were read.
type SliceMap struct {
	mp map[string]*mapItem
	sl []*SliceItem
}

func NewSliceMap() *SliceMap {
	return &SliceMap{
		mp: make(map[string]*mapItem),
		sl: make([]*SliceItem, 0),
	}
}

func (m *SliceMap) ForceGet(key string) interface{} {
	v, found := m.mp[key]
	if found {
		return v.data
	}
	return nil
}

func (m *SliceMap) Get(key string) (interface{}, bool) {
	v, found := m.mp[key]
	if found {
		return v.data, true
	}
	return nil, false
}

func (m *SliceMap) Set(key string, v interface{}) {
	old, found := m.mp[key]
	if found {
		old.data = v
		m.sl[old.idx].data = v
		return
	}
	m.sl = append(m.sl, &SliceItem{key: key, data: v})
	m.mp[key] = &mapItem{
		data: v,
		idx:  len(m.sl) - 1,
	}
}

func (m *SliceMap) Has(key string) bool {
	_, found := m.mp[key]
	return found
}

func (m *SliceMap) Delete(key string) {
	old, found := m.mp[key]
	if !found {
		return
	}
	m.sl = append(m.sl[:old.idx], m.sl[old.idx+1:]...)
	delete(m.mp, key)
	m.reindex(old.idx)
}

func (m *SliceMap) reindex(from int) {
	for i := from; i < len(m.sl); i++ {
		m.mp[m.sl[i].key].idx = i
	}
}

func (m *SliceMap) Size() int {
	return len(m.sl)
}

func (m *SliceMap) Items() []*SliceItem {
	return m.sl
}

func (m *SliceMap) Keys() []string {
	keys := make([]string, len(m.sl))
	for i, item := range m.sl {
		keys[i] = item.key
	}
	return keys
}
