package cell

import (
	"crypto/sha256"
	"fmt"
)

// NewRaw constructs a Cell, validating the 1023-bit/4-ref caps and (for
// exotic types) the type's fixed data schema, then eagerly computing the
// per-level hash/depth table. It is the single choke point every Cell in
// this module is built through: builder.Builder.Build and boc.Decode both
// call it rather than constructing a Cell by hand.
func NewRaw(typ Type, data []byte, nbits int, refs []*Cell) (*Cell, error) {
	if nbits > maxDataBits {
		return nil, fmt.Errorf("%w: %d", ErrTooManyDataBits, nbits)
	}
	if len(refs) > maxRefs {
		return nil, fmt.Errorf("%w: %d", ErrTooManyRefs, len(refs))
	}

	var prunedMask LevelMask
	if typ.IsExotic() {
		var err error
		prunedMask, err = validateExotic(typ, data, nbits, refs)
		if err != nil {
			return nil, err
		}
	}

	c := &Cell{
		typ:   typ,
		data:  cloneBytes(data),
		nbits: nbits,
		refs:  append([]*Cell(nil), refs...),
	}
	c.mask = deriveLevelMask(typ, refs, prunedMask)
	c.computeHashes(prunedMask)
	return c, nil
}

func cloneBytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// deriveLevelMask computes a cell's own level mask from its type and
// children, per spec §4.3: ordinary cells union their children's masks;
// merkle proof/update cells shift the union down one level (the proof
// "absorbs" one level of distinctness); library refs have no level; pruned
// branches carry an explicit stored mask.
func deriveLevelMask(typ Type, refs []*Cell, prunedMask LevelMask) LevelMask {
	switch typ {
	case PrunedBranch:
		return prunedMask
	case LibraryRef:
		return 0
	case MerkleProof:
		return refs[0].mask >> 1
	case MerkleUpdate:
		return (refs[0].mask | refs[1].mask) >> 1
	default: // Ordinary
		var m LevelMask
		for _, r := range refs {
			m |= r.mask
		}
		return m
	}
}

// computeHashes fills in c.hashes/c.depths for all four levels. For
// ordinary/library/merkle cells it runs the standard per-level descriptor
// hash; for pruned branches, levels below the cell's own carry the stored
// table values verbatim instead of being recomputed (the cell's own data
// never contained the pruned subtree, so there is nothing to recompute).
func (c *Cell) computeHashes(prunedMask LevelMask) {
	if c.typ == PrunedBranch && c.nbits != legacyPrunedBits && len(c.data) >= 2 && c.data[0] == tagPrunedBranch {
		hashes, depths := prunedTable(c.data, prunedMask)
		levels := significantLevels(prunedMask)
		ownLevel := prunedMask.Level()
		for l := 0; l <= 3; l++ {
			idx := tableIndexFor(levels, l)
			if idx >= 0 && idx < len(hashes) {
				c.hashes[l] = hashes[idx]
				c.depths[l] = depths[idx]
				continue
			}
			// l above the pruned branch's own significant range: repeats
			// the top stored entry.
			top := len(hashes) - 1
			if top >= 0 {
				c.hashes[l] = hashes[top]
				c.depths[l] = depths[top]
			}
		}
		_ = ownLevel
		return
	}

	for l := 0; l <= 3; l++ {
		if l > 0 && !c.mask.IsSignificant(l) {
			c.hashes[l] = c.hashes[l-1]
			c.depths[l] = c.depths[l-1]
			continue
		}
		c.hashes[l], c.depths[l] = c.hashForLevel(l)
	}
}

// tableIndexFor returns the index into a pruned branch's stored table
// corresponding to level l, or -1 if l is not one of the branch's
// significant levels.
func tableIndexFor(significant []int, l int) int {
	for i, sl := range significant {
		if sl == l {
			return i
		}
		if sl > l {
			break
		}
	}
	return -1
}

// hashForLevel computes the representation hash and depth of c as observed
// at level l: SHA-256 over the two descriptor bytes, the data (with its
// bit-completion tag when not byte-aligned), and each child's depth/hash at
// the same level.
func (c *Cell) hashForLevel(l int) ([32]byte, uint16) {
	d1 := c.descriptorByte1(l)
	d2 := c.descriptorByte2()

	h := sha256.New()
	h.Write([]byte{d1, d2})
	h.Write(c.dataWithCompletionTag())

	var maxChildDepth uint16
	for _, r := range c.refs {
		d := r.DepthAtLevel(l)
		if d > maxChildDepth {
			maxChildDepth = d
		}
	}
	for _, r := range c.refs {
		d := r.DepthAtLevel(l)
		h.Write([]byte{byte(d >> 8), byte(d)})
	}
	for _, r := range c.refs {
		rh := r.HashAtLevel(l)
		h.Write(rh[:])
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))

	depth := uint16(0)
	if len(c.refs) > 0 {
		depth = maxChildDepth + 1
	}
	return out, depth
}

func (c *Cell) descriptorByte1(level int) byte {
	r := byte(len(c.refs))
	var s byte
	if c.typ.IsExotic() {
		s = 1
	}
	lvl := byte(c.mask.Apply(level))
	return r | s<<3 | lvl<<5
}

func (c *Cell) descriptorByte2() byte {
	full := c.nbits / 8
	partial := c.nbits % 8
	d2 := full * 2
	if partial != 0 {
		d2++
	}
	return byte(d2)
}

// dataWithCompletionTag returns the data bytes with a trailing completion
// bit (a single 1 bit followed by zero padding to the next byte) appended
// when the cell's bit length is not a whole number of bytes; returned
// unchanged otherwise.
func (c *Cell) dataWithCompletionTag() []byte {
	if c.nbits%8 == 0 {
		return c.data
	}
	full := c.nbits / 8
	out := make([]byte, full+1)
	copy(out, c.data[:full])
	lastBits := c.nbits % 8
	tailByte := c.data[full]
	mask := byte(0xFF) << uint(8-lastBits)
	out[full] = (tailByte & mask) | (1 << uint(7-lastBits))
	return out
}
