package company

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// BonusDescription is the description given to every bonus present.
const BonusDescription = "A marketing bonus item."

// bonusVariants are the products a present can be dressed from.
var bonusVariants = []types.ItemType{
	types.ItemTypePen,
	types.ItemTypeCompass,
	types.ItemTypeRuler,
}

// Bonus generates marketing presents for first-time customers. The variant
// and the identifier of each present are both drawn from one seeded ChaCha8
// stream, so equal seeds produce equal sequences. Not safe for concurrent use.
type Bonus struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// NewBonus returns a generator seeded with seed.
func NewBonus(seed uint64) *Bonus {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &Bonus{src: src, rng: rand.New(src)}
}

// NewClockBonus returns a generator seeded from the current time.
func NewClockBonus() *Bonus {
	return NewBonus(uint64(time.Now().UnixNano()))
}

// Next returns a fresh present with a uniformly chosen variant.
func (b *Bonus) Next() (types.Item, error) {
	variant := bonusVariants[b.rng.IntN(len(bonusVariants))]
	id, err := uuid.NewRandomFromReader(b.src)
	if err != nil {
		return types.Item{}, fmt.Errorf("bonus identifier: %w", err)
	}
	return types.NewPresent(types.Identifier(id.String()), variant, BonusDescription)
}
