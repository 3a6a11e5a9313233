package fuzzctx

import (
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/roach88/seaharness/internal/canonical"
	"github.com/roach88/seaharness/internal/order"
)

// Canonical returns the context as a map suitable for canonical.Marshal.
// 256-bit numbers are decimal strings; addresses are checksummed hex.
func (c TestContext) Canonical() map[string]any {
	orders := make([]any, len(c.orders))
	for i, o := range c.orders {
		orders[i] = canonicalOrder(o)
	}
	checks := make([]string, len(c.checks))
	for i, s := range c.checks {
		checks[i] = s.String()
	}
	resolvers := make([]any, len(c.criteriaResolvers))
	for i, r := range c.criteriaResolvers {
		proof := make([]string, len(r.CriteriaProof))
		for j, h := range r.CriteriaProof {
			proof[j] = h.Hex()
		}
		resolvers[i] = map[string]any{
			"order_index":    r.OrderIndex,
			"side":           r.Side.String(),
			"index":          r.Index,
			"identifier":     r.Identifier.Dec(),
			"criteria_proof": proof,
		}
	}

	return map[string]any{
		"orders": orders,
		"executor": map[string]any{
			"variant": c.executor.Variant,
			"address": c.executor.Address.Hex(),
		},
		"caller":      c.caller.Hex(),
		"fuzz_params": map[string]any{"seed": c.fuzzParams.Seed},
		"checks":      checks,
		"auxiliary": map[string]any{
			"counter":               c.counter.Dec(),
			"fulfiller_conduit_key": c.fulfillerConduitKey.Hex(),
			"criteria_resolvers":    resolvers,
			"recipient":             c.recipient.Hex(),
		},
	}
}

// MarshalCanonical returns the RFC 8785 encoding of Canonical.
func (c TestContext) MarshalCanonical() ([]byte, error) {
	return canonical.Marshal(c.Canonical())
}

// Fingerprint identifies the scenario by content. Two contexts built through
// different setter orders but holding the same values share a fingerprint.
func (c TestContext) Fingerprint() (string, error) {
	return canonical.Fingerprint(canonical.DomainContext, c.Canonical())
}

func canonicalOrder(o order.Order) map[string]any {
	p := o.Parameters
	offer := make([]any, len(p.Offer))
	for i, item := range p.Offer {
		offer[i] = canonicalItem(item.ItemType, item.Token.Hex(), &item.IdentifierOrCriteria, &item.StartAmount, &item.EndAmount)
	}
	consideration := make([]any, len(p.Consideration))
	for i, item := range p.Consideration {
		m := canonicalItem(item.ItemType, item.Token.Hex(), &item.IdentifierOrCriteria, &item.StartAmount, &item.EndAmount)
		m["recipient"] = item.Recipient.Hex()
		consideration[i] = m
	}

	return map[string]any{
		"parameters": map[string]any{
			"offerer":       p.Offerer.Hex(),
			"zone":          p.Zone.Hex(),
			"offer":         offer,
			"consideration": consideration,
			"order_type":    p.OrderType.String(),
			"start_time":    p.StartTime.Dec(),
			"end_time":      p.EndTime.Dec(),
			"zone_hash":     p.ZoneHash.Hex(),
			"salt":          p.Salt.Dec(),
			"conduit_key":   p.ConduitKey.Hex(),

			"total_original_consideration_items": p.TotalOriginalConsiderationItems.Dec(),
		},
		"numerator":   o.Numerator,
		"denominator": o.Denominator,
		"signature":   hexutil.Encode(o.Signature),
		"extra_data":  hexutil.Encode(o.ExtraData),
	}
}

func canonicalItem(t order.ItemType, token string, id, start, end *uint256.Int) map[string]any {
	return map[string]any{
		"item_type":              t.String(),
		"token":                  token,
		"identifier_or_criteria": id.Dec(),
		"start_amount":           start.Dec(),
		"end_amount":             end.Dec(),
	}
}
