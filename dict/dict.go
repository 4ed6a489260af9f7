// Package dict implements TON's Patricia-tree dictionary codec (component
// C10): the Hashmap/HashmapE family of TL-B types used throughout the
// protocol for fixed-key-width key/value maps (account states indexed by
// address tail, jetton balances, config params). The three HmLabel
// encodings (short/long/same) mirror the three subkey-list schemes
// hivekit's internal/format/list.go decodes for its own registry keys
// (DecodeLI/DecodeLF/DecodeRIList) — different bit layouts chosen for the
// same reason: pick whichever is cheapest for the data actually being
// stored.
package dict

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/parser"
	"github.com/ton-cellkit/cellkit/tlb"
)

var (
	// errBadTrie signals an internal consistency failure while walking a
	// trie built by buildTrie — keys of the wrong width reaching build().
	errBadTrie = errors.New("dict: malformed trie (key width mismatch)")
	// ErrKeyWidthMismatch is returned by Set when a key does not fit KeyBits.
	ErrKeyWidthMismatch = errors.New("dict: key does not fit configured width")
	// ErrEmptyDict is returned by EncodeRoot on an empty Dict — a bare
	// Hashmap (unlike HashmapE) has no representation for zero entries.
	ErrEmptyDict = errors.New("dict: Hashmap has no empty representation, use StoreDict/HashmapE")
)

// Entry is one decoded key/value pair. Key is always exactly the Dict's
// KeyBits long (see Dict.KeyBits).
type Entry struct {
	Key   bitSeq
	Value *cell.Cell
}

// KeyInt renders an Entry's key as a big-endian unsigned integer.
func (e Entry) KeyInt() *big.Int { return e.Key.toBigInt() }

// Dict is a fixed-key-width Patricia tree dictionary, held in memory as a
// plain Go map for O(1) lookup/mutation; Encode/StoreDict rebuild the tree
// from scratch each time, same as hivekit rebuilds its registry list cells
// from an in-memory diff before writing (pkg/hive/diff.go).
type Dict struct {
	KeyBits int
	entries map[string]*cell.Cell
	keys    map[string]bitSeq
}

// New returns an empty dictionary over keyBits-wide keys.
func New(keyBits int) *Dict {
	return &Dict{KeyBits: keyBits, entries: map[string]*cell.Cell{}, keys: map[string]bitSeq{}}
}

func keyString(k bitSeq) string { return string(k.pack()) }

func bitSeqFromBigInt(v *big.Int, keyBits int) bitSeq {
	packed := make([]byte, (keyBits+7)/8)
	v.FillBytes(packed)
	return packedToBitSeq(packed, keyBits)
}

func (k bitSeq) toBigInt() *big.Int {
	return new(big.Int).SetBytes(k.pack())
}

// Set stores value under key, overwriting any existing entry.
func (d *Dict) Set(key *big.Int, value *cell.Cell) error {
	if key.BitLen() > d.KeyBits {
		return ErrKeyWidthMismatch
	}
	bs := bitSeqFromBigInt(key, d.KeyBits)
	s := keyString(bs)
	d.entries[s] = value
	d.keys[s] = bs
	return nil
}

// SetObject serializes o into its own cell and stores it under key.
func (d *Dict) SetObject(key *big.Int, o tlb.Storable) error {
	c, err := tlb.Store(o)
	if err != nil {
		return err
	}
	return d.Set(key, c)
}

// Get returns the value stored under key, if any.
func (d *Dict) Get(key *big.Int) (*cell.Cell, bool) {
	bs := bitSeqFromBigInt(key, d.KeyBits)
	v, ok := d.entries[keyString(bs)]
	return v, ok
}

// GetObject loads the cell stored under key into o.
func (d *Dict) GetObject(key *big.Int, o tlb.Loadable) (bool, error) {
	c, ok := d.Get(key)
	if !ok {
		return false, nil
	}
	return true, tlb.Load(c, o)
}

// Delete removes the entry for key, if present.
func (d *Dict) Delete(key *big.Int) {
	bs := bitSeqFromBigInt(key, d.KeyBits)
	s := keyString(bs)
	delete(d.entries, s)
	delete(d.keys, s)
}

// Len returns the number of stored entries.
func (d *Dict) Len() int { return len(d.entries) }

// Entries returns all entries in ascending key order, for deterministic
// encoding and iteration.
func (d *Dict) Entries() []Entry {
	out := make([]Entry, 0, len(d.entries))
	for s, bs := range d.keys {
		out = append(out, Entry{Key: bs, Value: d.entries[s]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key.toBigInt().Cmp(out[j].Key.toBigInt()) < 0 })
	return out
}

// Keys returns all stored keys in ascending order.
func (d *Dict) Keys() []*big.Int {
	es := d.Entries()
	out := make([]*big.Int, len(es))
	for i, e := range es {
		out[i] = e.Key.toBigInt()
	}
	return out
}

func writeLeafInline(b *builder.Builder, v *cell.Cell) error { return b.WriteCell(v) }

// readLeafInline reconstructs a leaf's value cell by taking everything left
// in p — a leaf is always the last thing in its node, so the remaining
// bits and refs belong to the value in full.
func readLeafInline(p *parser.Parser) (*cell.Cell, error) {
	nbits := p.BitsLeft()
	data, err := p.ReadBits(nbits)
	if err != nil {
		return nil, err
	}
	nrefs := p.RefsLeft()
	refs := make([]*cell.Cell, nrefs)
	for i := 0; i < nrefs; i++ {
		refs[i], err = p.ReadRef()
		if err != nil {
			return nil, err
		}
	}
	return cell.NewRaw(cell.Ordinary, data, nbits, refs)
}

// EncodeRoot builds the Hashmap n X root cell directly (no HashmapE
// presence bit) from a non-empty Dict; a bare Hashmap cannot represent
// zero entries.
func EncodeRoot(d *Dict) (*cell.Cell, error) {
	if d.Len() == 0 {
		return nil, ErrEmptyDict
	}
	es := d.Entries()
	trie := buildTrie(es, d.KeyBits)
	return encodeNode(trie, d.KeyBits, writeLeafInline)
}

// DecodeRoot parses a Hashmap n X root cell (c must not represent an empty
// dictionary — there is no such representation at this level).
func DecodeRoot(c *cell.Cell, keyBits int) (*Dict, error) {
	d := New(keyBits)
	var out []Entry
	if err := decodeNode(parser.New(c), keyBits, nil, readLeafInline, &out); err != nil {
		return nil, fmt.Errorf("dict: %w", err)
	}
	for _, e := range out {
		d.entries[keyString(e.Key)] = e.Value
		d.keys[keyString(e.Key)] = e.Key
	}
	return d, nil
}

// StoreDict writes d as a HashmapE n X: a single presence bit, followed by
// a ref to the Hashmap root when non-empty. An empty Dict writes just the
// absent bit and no ref — the deliberately chosen, spec-faithful rendering
// of the empty case (see DESIGN.md); it does not reproduce the historical
// single placeholder-ref encoding some early tooling emitted for empty
// maps.
func StoreDict(b *builder.Builder, d *Dict) error {
	if d == nil || d.Len() == 0 {
		return b.WriteBit(0)
	}
	if err := b.WriteBit(1); err != nil {
		return err
	}
	root, err := EncodeRoot(d)
	if err != nil {
		return err
	}
	return b.WriteRef(root)
}

// LoadDict reads a HashmapE n X. It returns a nil *Dict (not an error) when
// the map is absent, matching the "Maybe" shape of the wire encoding.
func LoadDict(p *parser.Parser, keyBits int) (*Dict, error) {
	bit, err := p.ReadBit()
	if err != nil {
		return nil, err
	}
	if bit == 0 {
		return nil, nil
	}
	root, err := p.ReadRef()
	if err != nil {
		return nil, err
	}
	return DecodeRoot(root, keyBits)
}

// Union returns a new Dict containing every entry of a and b; where both
// define the same key, b's value wins. Grounded on hivekit's registry merge
// pass (pkg/hive/merge.go), generalized from byte-string registry values to
// arbitrary cell values.
func Union(a, b *Dict) *Dict {
	keyBits := a.KeyBits
	if b != nil {
		keyBits = b.KeyBits
	}
	out := New(keyBits)
	if a != nil {
		for s, bs := range a.keys {
			out.entries[s] = a.entries[s]
			out.keys[s] = bs
		}
	}
	if b != nil {
		for s, bs := range b.keys {
			out.entries[s] = b.entries[s]
			out.keys[s] = bs
		}
	}
	return out
}

// Diff reports the keys present in a but absent from b, and the keys
// present in both but whose values differ (compared by hash). Grounded on
// hivekit's registry diff pass (pkg/hive/diff.go), generalized from exact
// byte comparison to cell-hash comparison.
func Diff(a, b *Dict) (onlyInA []*big.Int, changed []*big.Int) {
	for s, bs := range a.keys {
		bv, ok := b.entries[s]
		if !ok {
			onlyInA = append(onlyInA, bs.toBigInt())
			continue
		}
		if !a.entries[s].Equal(bv) {
			changed = append(changed, bs.toBigInt())
		}
	}
	sort.Slice(onlyInA, func(i, j int) bool { return onlyInA[i].Cmp(onlyInA[j]) < 0 })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Cmp(changed[j]) < 0 })
	return onlyInA, changed
}
