package feed

import (
	"swipemarket_api/internal/catalog/models"
)

// DedupIndex tracks identity and near-identity over one assembly call. A
// candidate is rejected when its id was already seen, when another product
// with the same title/brand key already occupies the index, or when its
// image signature was already admitted. The index is per-call state and is
// never shared between calls.
type DedupIndex struct {
	seenIDs  map[string]struct{}
	seenKeys map[string]struct{}
	seenSigs map[string]struct{}
	admitted []string
}

// NewDedupIndex builds an index pre-seeded with ids already delivered to the
// session, so cross-page repetition is structurally impossible.
func NewDedupIndex(exclude []string) *DedupIndex {
	idx := &DedupIndex{
		seenIDs:  make(map[string]struct{}, len(exclude)),
		seenKeys: make(map[string]struct{}),
		seenSigs: make(map[string]struct{}),
	}
	for _, id := range exclude {
		idx.seenIDs[id] = struct{}{}
	}
	return idx
}

// Admit reports whether the candidate takes a slot. On admission its id, its
// title/brand key and its image signature are all recorded.
func (d *DedupIndex) Admit(p models.Product) bool {
	if _, ok := d.seenIDs[p.ID]; ok {
		return false
	}
	key := p.TitleBrandKey()
	if _, ok := d.seenKeys[key]; ok {
		return false
	}
	if p.ImageSignature != "" {
		if _, ok := d.seenSigs[p.ImageSignature]; ok {
			return false
		}
		d.seenSigs[p.ImageSignature] = struct{}{}
	}
	d.seenIDs[p.ID] = struct{}{}
	d.seenKeys[key] = struct{}{}
	d.admitted = append(d.admitted, p.ID)
	return true
}

// Admitted returns the admitted ids in admission order.
func (d *DedupIndex) Admitted() []string {
	return d.admitted
}

func (d *DedupIndex) Len() int {
	return len(d.admitted)
}
