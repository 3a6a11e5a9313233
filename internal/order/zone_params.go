package order

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// ZoneParametersFor projects an order into the bundle a zone would receive
// if the order were filled at its start amounts with criteria left
// unresolved. Tooling and dry-run drivers use it; real amounts are the
// protocol's business.
func ZoneParametersFor(o Order, fulfiller common.Address, orderHash common.Hash, orderHashes []common.Hash) ZoneParameters {
	p := o.Parameters
	offer := make([]SpentItem, len(p.Offer))
	for i, item := range p.Offer {
		offer[i] = SpentItem{
			ItemType:   item.ItemType,
			Token:      item.Token,
			Identifier: item.IdentifierOrCriteria,
			Amount:     item.StartAmount,
		}
	}
	consideration := make([]ReceivedItem, len(p.Consideration))
	for i, item := range p.Consideration {
		consideration[i] = ReceivedItem{
			ItemType:   item.ItemType,
			Token:      item.Token,
			Identifier: item.IdentifierOrCriteria,
			Amount:     item.StartAmount,
			Recipient:  item.Recipient,
		}
	}
	return ZoneParameters{
		OrderHash:     orderHash,
		Fulfiller:     fulfiller,
		Offerer:       p.Offerer,
		Offer:         offer,
		Consideration: consideration,
		ExtraData:     append([]byte(nil), o.ExtraData...),
		OrderHashes:   CloneHashes(orderHashes),
		StartTime:     p.StartTime,
		EndTime:       p.EndTime,
		ZoneHash:      p.ZoneHash,
	}
}

// Digest returns keccak256 over a fixed packing of the order's parameters.
// It identifies an order within a scenario; it is not the protocol's
// EIP-712 order hash.
func (o Order) Digest() common.Hash {
	p := o.Parameters
	buf := make([]byte, 0, 64*(len(p.Offer)+len(p.Consideration)+4))
	word := func(v *uint256.Int) {
		b := v.Bytes32()
		buf = append(buf, b[:]...)
	}

	buf = append(buf, p.Offerer.Bytes()...)
	buf = append(buf, p.Zone.Bytes()...)
	for i := range p.Offer {
		item := &p.Offer[i]
		buf = append(buf, byte(item.ItemType))
		buf = append(buf, item.Token.Bytes()...)
		word(&item.IdentifierOrCriteria)
		word(&item.StartAmount)
		word(&item.EndAmount)
	}
	for i := range p.Consideration {
		item := &p.Consideration[i]
		buf = append(buf, byte(item.ItemType))
		buf = append(buf, item.Token.Bytes()...)
		word(&item.IdentifierOrCriteria)
		word(&item.StartAmount)
		word(&item.EndAmount)
		buf = append(buf, item.Recipient.Bytes()...)
	}
	buf = append(buf, byte(p.OrderType))
	word(&p.StartTime)
	word(&p.EndTime)
	buf = append(buf, p.ZoneHash.Bytes()...)
	word(&p.Salt)
	buf = append(buf, p.ConduitKey.Bytes()...)
	word(&p.TotalOriginalConsiderationItems)
	buf = binary.BigEndian.AppendUint64(buf, o.Numerator)
	buf = binary.BigEndian.AppendUint64(buf, o.Denominator)

	return crypto.Keccak256Hash(buf)
}
