package mahjong

import "fmt"

// BlockKind tags the structural role a Block plays within a Decomposition.
type BlockKind int

const (
	BlockPair BlockKind = iota
	BlockTriplet
	BlockSequence
	BlockPartialPair
	BlockPartialRyanmen
	BlockPartialKanchan
	BlockPartialPenchan
	BlockIsolated
)

// kindRank fixes the total order BlockKind values sort in when a
// Decomposition is canonicalized. The exact order doesn't matter for
// correctness, only that it is total and stable, so decompositions that
// differ only in the order blocks were discovered still compare equal.
func (k BlockKind) kindRank() int { return int(k) }

func (k BlockKind) String() string {
	switch k {
	case BlockPair:
		return "Pair"
	case BlockTriplet:
		return "Triplet"
	case BlockSequence:
		return "Sequence"
	case BlockPartialPair:
		return "PartialPair"
	case BlockPartialRyanmen:
		return "PartialRyanmen"
	case BlockPartialKanchan:
		return "PartialKanchan"
	case BlockPartialPenchan:
		return "PartialPenchan"
	case BlockIsolated:
		return "Isolated"
	default:
		return "Unknown"
	}
}

// Block is a tagged value describing one structural group within a hand
// decomposition. Partial kinds carry their completion tiles inline
// (Completion) rather than leaving the caller to re-derive them from
// Suit/LowRank.
type Block struct {
	Kind       BlockKind
	Id         TileId   // meaningful for Pair, Triplet, PartialPair, Isolated
	Suit       Suit     // meaningful for Sequence, PartialRyanmen/Kanchan/Penchan
	LowRank    int      // 1-indexed rank of the lowest tile, meaningful for the same kinds as Suit
	Completion []TileId // tiles whose addition completes a partial block; nil for complete blocks and Isolated
}

// NewPair returns a complete Pair block of id.
func NewPair(id TileId) Block { return Block{Kind: BlockPair, Id: id} }

// NewTriplet returns a complete Triplet block of id.
func NewTriplet(id TileId) Block { return Block{Kind: BlockTriplet, Id: id} }

// NewSequence returns a complete Sequence block starting at low (a
// numeric TileId with rank <= 7).
func NewSequence(low TileId) Block {
	return Block{Kind: BlockSequence, Suit: low.Suit(), LowRank: low.Rank(), Id: low}
}

// NewPartialPair returns a Partial-Pair (tanki/shanpon candidate) block
// on id, whose only completion tile is id itself.
func NewPartialPair(id TileId) Block {
	return Block{Kind: BlockPartialPair, Id: id, Completion: []TileId{id}}
}

// NewPartialRyanmen returns an open two-sided partial starting at low
// (ranks low, low+1), completed by either low-1 or low+2.
func NewPartialRyanmen(low TileId) Block {
	comp := make([]TileId, 0, 2)
	if low.Rank() > 1 {
		comp = append(comp, low-1)
	}
	comp = append(comp, low+2)
	return Block{Kind: BlockPartialRyanmen, Suit: low.Suit(), LowRank: low.Rank(), Id: low, Completion: comp}
}

// NewPartialKanchan returns a closed partial on ranks (low, low+2),
// completed only by the middle tile low+1.
func NewPartialKanchan(low TileId) Block {
	return Block{Kind: BlockPartialKanchan, Suit: low.Suit(), LowRank: low.Rank(), Id: low, Completion: []TileId{low + 1}}
}

// NewPartialPenchan returns an edge partial: either ranks (1,2) waiting
// on 3, or ranks (8,9) waiting on 7. low is the lower tile of the pair.
func NewPartialPenchan(low TileId) Block {
	var comp TileId
	if low.Rank() == 1 {
		comp = low + 2
	} else {
		comp = low - 1
	}
	return Block{Kind: BlockPartialPenchan, Suit: low.Suit(), LowRank: low.Rank(), Id: low, Completion: []TileId{comp}}
}

// NewIsolated returns a single floating tile with no partner yet.
func NewIsolated(id TileId) Block { return Block{Kind: BlockIsolated, Id: id} }

// IsComplete reports whether b contributes three tiles toward a meld
// (Triplet, Sequence) as opposed to a partial or the pair head.
func (b Block) IsComplete() bool {
	return b.Kind == BlockTriplet || b.Kind == BlockSequence
}

// IsPartial reports whether b is a two-tile block awaiting one more
// specific tile.
func (b Block) IsPartial() bool {
	switch b.Kind {
	case BlockPartialPair, BlockPartialRyanmen, BlockPartialKanchan, BlockPartialPenchan:
		return true
	default:
		return false
	}
}

// Tiles returns the TileIds this block consumes from the source
// CountArray, in ascending order, one entry per physical tile.
func (b Block) Tiles() []TileId {
	switch b.Kind {
	case BlockPair:
		return []TileId{b.Id, b.Id}
	case BlockTriplet:
		return []TileId{b.Id, b.Id, b.Id}
	case BlockSequence:
		return []TileId{b.Id, b.Id + 1, b.Id + 2}
	case BlockPartialPair:
		return []TileId{b.Id, b.Id}
	case BlockPartialRyanmen, BlockPartialPenchan:
		return []TileId{b.Id, b.Id + 1}
	case BlockPartialKanchan:
		return []TileId{b.Id, b.Id + 2}
	case BlockIsolated:
		return []TileId{b.Id}
	default:
		return nil
	}
}

// firstTileID is the canonical-ordering tiebreak key: the lowest TileId
// the block touches.
func (b Block) firstTileID() TileId {
	switch b.Kind {
	case BlockSequence, BlockPartialRyanmen, BlockPartialKanchan, BlockPartialPenchan:
		return b.Id
	default:
		return b.Id
	}
}

// Less defines the fixed total order used to canonicalize a
// Decomposition's block list before deduplication.
func (b Block) Less(other Block) bool {
	if b.Kind.kindRank() != other.Kind.kindRank() {
		return b.Kind.kindRank() < other.Kind.kindRank()
	}
	return b.firstTileID() < other.firstTileID()
}

func (b Block) String() string {
	switch b.Kind {
	case BlockSequence, BlockPartialRyanmen, BlockPartialKanchan, BlockPartialPenchan:
		return fmt.Sprintf("%s(%s,low=%d)", b.Kind, b.Suit, b.LowRank)
	default:
		return fmt.Sprintf("%s(%s)", b.Kind, b.Id)
	}
}
