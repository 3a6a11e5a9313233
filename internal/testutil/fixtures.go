package testutil

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/roach88/seaharness/internal/order"
)

// Addr returns the address whose 20 bytes are all b, e.g. Addr(0x11) is
// 0x1111111111111111111111111111111111111111.
func Addr(b byte) common.Address {
	var a common.Address
	for i := range a {
		a[i] = b
	}
	return a
}

// Hash returns the hash whose 32 bytes are all b.
func Hash(b byte) common.Hash {
	var h common.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

// U returns n as a uint256 value.
func U(n uint64) uint256.Int {
	return *uint256.NewInt(n)
}

// Fixture addresses shared by tests.
var (
	Offerer   = Addr(0x11)
	Zone      = Addr(0x22)
	NFT       = Addr(0x33)
	Currency  = Addr(0x44)
	Fulfiller = Addr(0x55)
)

// RestrictedOrder returns a FULL_RESTRICTED order that offers one ERC721 and
// asks for ERC20 payment whose identifier field is identifier. The order's
// zone is Zone.
func RestrictedOrder(identifier uint64) order.Order {
	return order.Order{
		Parameters: order.OrderParameters{
			Offerer: Offerer,
			Zone:    Zone,
			Offer: []order.OfferItem{{
				ItemType:             order.ItemERC721,
				Token:                NFT,
				IdentifierOrCriteria: U(1),
				StartAmount:          U(1),
				EndAmount:            U(1),
			}},
			Consideration: []order.ConsiderationItem{{
				ItemType:             order.ItemERC20,
				Token:                Currency,
				IdentifierOrCriteria: U(identifier),
				StartAmount:          U(100),
				EndAmount:            U(100),
				Recipient:            Offerer,
			}},
			OrderType: order.FullRestricted,
			StartTime: U(0),
			EndTime:   U(1 << 32),
			Salt:      U(identifier),

			TotalOriginalConsiderationItems: U(1),
		},
		Numerator:   1,
		Denominator: 1,
		Signature:   []byte{0x01, 0x02, 0x03},
		ExtraData:   []byte{},
	}
}

// Resolver returns a consideration-side criteria resolver with a two-node
// proof.
func Resolver(orderIndex uint64, identifier uint64) order.CriteriaResolver {
	return order.CriteriaResolver{
		OrderIndex:    orderIndex,
		Side:          order.SideConsideration,
		Index:         0,
		Identifier:    U(identifier),
		CriteriaProof: []common.Hash{Hash(0xaa), Hash(0xbb)},
	}
}
