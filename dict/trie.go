package dict

import (
	"github.com/ton-cellkit/cellkit/builder"
	"github.com/ton-cellkit/cellkit/cell"
	"github.com/ton-cellkit/cellkit/parser"
)

// trieNode is a path-compressed binary trie node: either a leaf carrying a
// stored value cell, or a fork with two children reached behind their own
// refs, per the HashmapNode grammar. edge holds the key bits this node's
// incoming label consumes (possibly empty at the root).
type trieNode struct {
	edge     bitSeq
	isLeaf   bool
	value    *cell.Cell
	zero, one *trieNode
}

// buildTrie constructs a path-compressed trie over entries, each of whose
// Key must be exactly keyBits long. Entries with duplicate keys: the later
// one in the slice wins, matching ordinary map-assignment semantics.
func buildTrie(entries []Entry, keyBits int) *trieNode {
	dedup := make(map[string]*cell.Cell, len(entries))
	order := make([]bitSeq, 0, len(entries))
	for _, e := range entries {
		k := string(e.Key.pack())
		if _, ok := dedup[k]; !ok {
			order = append(order, e.Key)
		}
		dedup[k] = e.Value
	}
	suffixes := make([]bitSeq, len(order))
	values := make([]*cell.Cell, len(order))
	for i, k := range order {
		suffixes[i] = k
		values[i] = dedup[string(k.pack())]
	}
	if len(suffixes) == 0 {
		return nil
	}
	return build(suffixes, values)
}

func build(suffixes []bitSeq, values []*cell.Cell) *trieNode {
	if len(suffixes) == 1 {
		return &trieNode{edge: suffixes[0], isLeaf: true, value: values[0]}
	}

	lcp := suffixes[0]
	for _, s := range suffixes[1:] {
		n := commonPrefixLen(lcp, s)
		lcp = lcp[:n]
	}
	l := len(lcp)

	var zeroSuf, oneSuf []bitSeq
	var zeroVal, oneVal []*cell.Cell
	for i, s := range suffixes {
		rest := s[l+1:]
		if s[l] == 0 {
			zeroSuf = append(zeroSuf, rest)
			zeroVal = append(zeroVal, values[i])
		} else {
			oneSuf = append(oneSuf, rest)
			oneVal = append(oneVal, values[i])
		}
	}
	n := &trieNode{edge: lcp}
	n.zero = build(zeroSuf, zeroVal)
	n.one = build(oneSuf, oneVal)
	return n
}

// encodeNode writes node (Hashmap n X) given budget m = total key bits
// still owed by this subtree's full keys (the n from the TL-B grammar).
func encodeNode(n *trieNode, m int, writeLeaf func(*builder.Builder, *cell.Cell) error) (*cell.Cell, error) {
	b := builder.New()
	if err := writeLabel(b, n.edge, m); err != nil {
		return nil, err
	}
	rem := m - len(n.edge)
	if n.isLeaf {
		if rem != 0 {
			return nil, errBadTrie
		}
		if err := writeLeaf(b, n.value); err != nil {
			return nil, err
		}
		return b.Build()
	}
	if rem < 1 {
		return nil, errBadTrie
	}
	zc, err := encodeNode(n.zero, rem-1, writeLeaf)
	if err != nil {
		return nil, err
	}
	oc, err := encodeNode(n.one, rem-1, writeLeaf)
	if err != nil {
		return nil, err
	}
	if err := b.WriteRef(zc); err != nil {
		return nil, err
	}
	if err := b.WriteRef(oc); err != nil {
		return nil, err
	}
	return b.Build()
}

// decodeNode reads a Hashmap n X node (n = m) and appends its entries (key
// accumulated so far as keyPrefix) into out, via readLeaf to load the
// stored value at each leaf.
func decodeNode(p *parser.Parser, m int, keyPrefix bitSeq, readLeaf func(*parser.Parser) (*cell.Cell, error), out *[]Entry) error {
	edge, err := readLabel(p, m)
	if err != nil {
		return err
	}
	prefix := append(append(bitSeq{}, keyPrefix...), edge...)
	rem := m - len(edge)
	if rem == 0 {
		v, err := readLeaf(p)
		if err != nil {
			return err
		}
		*out = append(*out, Entry{Key: prefix, Value: v})
		return nil
	}
	zeroSlice, err := p.ReadCellSlice()
	if err != nil {
		return err
	}
	oneSlice, err := p.ReadCellSlice()
	if err != nil {
		return err
	}
	zeroPrefix := append(append(bitSeq{}, prefix...), 0)
	onePrefix := append(append(bitSeq{}, prefix...), 1)
	if err := decodeNode(zeroSlice, rem-1, zeroPrefix, readLeaf, out); err != nil {
		return err
	}
	return decodeNode(oneSlice, rem-1, onePrefix, readLeaf, out)
}
