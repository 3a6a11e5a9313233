package order

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ItemType is the asset class of an offer or consideration item.
type ItemType uint8

// Item types, in protocol enum order.
const (
	ItemNative ItemType = iota
	ItemERC20
	ItemERC721
	ItemERC1155
	ItemERC721WithCriteria
	ItemERC1155WithCriteria
)

var itemTypeNames = [...]string{
	ItemNative:              "NATIVE",
	ItemERC20:               "ERC20",
	ItemERC721:              "ERC721",
	ItemERC1155:             "ERC1155",
	ItemERC721WithCriteria:  "ERC721_WITH_CRITERIA",
	ItemERC1155WithCriteria: "ERC1155_WITH_CRITERIA",
}

func (t ItemType) String() string {
	if int(t) < len(itemTypeNames) {
		return itemTypeNames[t]
	}
	return fmt.Sprintf("ItemType(%d)", uint8(t))
}

// ParseItemType resolves an item type from its protocol name.
func ParseItemType(s string) (ItemType, error) {
	for i, name := range itemTypeNames {
		if name == s {
			return ItemType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// HasCriteria reports whether the item's identifier is a criteria root that
// must be resolved at fulfillment time.
func (t ItemType) HasCriteria() bool {
	return t == ItemERC721WithCriteria || t == ItemERC1155WithCriteria
}

// OrderType controls partial fills and whether the zone is consulted.
type OrderType uint8

// Order types, in protocol enum order.
const (
	FullOpen OrderType = iota
	PartialOpen
	FullRestricted
	PartialRestricted
	Contract
)

var orderTypeNames = [...]string{
	FullOpen:          "FULL_OPEN",
	PartialOpen:       "PARTIAL_OPEN",
	FullRestricted:    "FULL_RESTRICTED",
	PartialRestricted: "PARTIAL_RESTRICTED",
	Contract:          "CONTRACT",
}

func (t OrderType) String() string {
	if int(t) < len(orderTypeNames) {
		return orderTypeNames[t]
	}
	return fmt.Sprintf("OrderType(%d)", uint8(t))
}

// ParseOrderType resolves an order type from its protocol name.
func ParseOrderType(s string) (OrderType, error) {
	for i, name := range orderTypeNames {
		if name == s {
			return OrderType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown order type %q", s)
}

// Restricted reports whether the protocol consults the order's zone.
func (t OrderType) Restricted() bool {
	return t == FullRestricted || t == PartialRestricted
}

// Side selects the offer or consideration half of an order.
type Side uint8

const (
	SideOffer Side = iota
	SideConsideration
)

func (s Side) String() string {
	switch s {
	case SideOffer:
		return "OFFER"
	case SideConsideration:
		return "CONSIDERATION"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// ParseSide resolves a side from its protocol name.
func ParseSide(s string) (Side, error) {
	switch s {
	case "OFFER":
		return SideOffer, nil
	case "CONSIDERATION":
		return SideConsideration, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// OfferItem is one asset the offerer gives up.
type OfferItem struct {
	ItemType             ItemType
	Token                common.Address
	IdentifierOrCriteria uint256.Int
	StartAmount          uint256.Int
	EndAmount            uint256.Int
}

// ConsiderationItem is one asset the offerer requires in return, along with
// the address that receives it.
type ConsiderationItem struct {
	ItemType             ItemType
	Token                common.Address
	IdentifierOrCriteria uint256.Int
	StartAmount          uint256.Int
	EndAmount            uint256.Int
	Recipient            common.Address
}

// OrderParameters is the signed body of an order.
type OrderParameters struct {
	Offerer       common.Address
	Zone          common.Address
	Offer         []OfferItem
	Consideration []ConsiderationItem
	OrderType     OrderType
	StartTime     uint256.Int
	EndTime       uint256.Int
	ZoneHash      common.Hash
	Salt          uint256.Int
	ConduitKey    common.Hash

	TotalOriginalConsiderationItems uint256.Int
}

// Order is an advanced order: its parameters, the fill fraction requested,
// the offerer's signature, and extra data forwarded to the zone.
type Order struct {
	Parameters  OrderParameters
	Numerator   uint64
	Denominator uint64
	Signature   hexutil.Bytes
	ExtraData   hexutil.Bytes
}

// CriteriaResolver supplies the concrete identifier and inclusion proof for
// a criteria-based item at fulfillment time.
type CriteriaResolver struct {
	OrderIndex    uint64
	Side          Side
	Index         uint64
	Identifier    uint256.Int
	CriteriaProof []common.Hash
}

// SpentItem is an offer item as seen by a zone after amounts are resolved.
type SpentItem struct {
	ItemType   ItemType
	Token      common.Address
	Identifier uint256.Int
	Amount     uint256.Int
}

// ReceivedItem is a consideration item as seen by a zone after amounts and
// criteria are resolved.
type ReceivedItem struct {
	ItemType   ItemType
	Token      common.Address
	Identifier uint256.Int
	Amount     uint256.Int
	Recipient  common.Address
}

// ZoneParameters is the argument bundle passed to a zone's validateOrder.
type ZoneParameters struct {
	OrderHash     common.Hash
	Fulfiller     common.Address
	Offerer       common.Address
	Offer         []SpentItem
	Consideration []ReceivedItem
	ExtraData     hexutil.Bytes
	OrderHashes   []common.Hash
	StartTime     uint256.Int
	EndTime       uint256.Int
	ZoneHash      common.Hash
}
