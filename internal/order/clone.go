package order

import (
	"slices"

	"github.com/ethereum/go-ethereum/common"
)

// Clone returns a copy of p whose offer and consideration slices are
// independent of p's. Nil slices stay nil.
func (p OrderParameters) Clone() OrderParameters {
	p.Offer = slices.Clone(p.Offer)
	p.Consideration = slices.Clone(p.Consideration)
	return p
}

// Clone returns a deep copy of o. Offer items, consideration items,
// signature and extra data are all copied into fresh storage.
func (o Order) Clone() Order {
	o.Parameters = o.Parameters.Clone()
	o.Signature = slices.Clone(o.Signature)
	o.ExtraData = slices.Clone(o.ExtraData)
	return o
}

// Clone returns a copy of r with its own proof slice.
func (r CriteriaResolver) Clone() CriteriaResolver {
	r.CriteriaProof = slices.Clone(r.CriteriaProof)
	return r
}

// Clone returns a deep copy of p.
func (p ZoneParameters) Clone() ZoneParameters {
	p.Offer = slices.Clone(p.Offer)
	p.Consideration = slices.Clone(p.Consideration)
	p.ExtraData = slices.Clone(p.ExtraData)
	p.OrderHashes = slices.Clone(p.OrderHashes)
	return p
}

// CloneOrders deep-copies every order in orders. The result is never nil.
func CloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, o := range orders {
		out[i] = o.Clone()
	}
	return out
}

// CloneCriteriaResolvers deep-copies every resolver. The result is never nil.
func CloneCriteriaResolvers(resolvers []CriteriaResolver) []CriteriaResolver {
	out := make([]CriteriaResolver, len(resolvers))
	for i, r := range resolvers {
		out[i] = r.Clone()
	}
	return out
}

// CloneSelectors copies a selector list. The result is never nil.
func CloneSelectors(sels []Selector) []Selector {
	out := make([]Selector, len(sels))
	copy(out, sels)
	return out
}

// CloneHashes copies a hash list. The result is never nil.
func CloneHashes(hashes []common.Hash) []common.Hash {
	out := make([]common.Hash, len(hashes))
	copy(out, hashes)
	return out
}
