package order

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOrder() Order {
	return Order{
		Parameters: OrderParameters{
			Offerer: common.HexToAddress("0x1111111111111111111111111111111111111111"),
			Zone:    common.HexToAddress("0x2222222222222222222222222222222222222222"),
			Offer: []OfferItem{{
				ItemType:             ItemERC721,
				Token:                common.HexToAddress("0x3333333333333333333333333333333333333333"),
				IdentifierOrCriteria: *uint256.NewInt(7),
				StartAmount:          *uint256.NewInt(1),
				EndAmount:            *uint256.NewInt(1),
			}},
			Consideration: []ConsiderationItem{{
				ItemType:             ItemERC20,
				Token:                common.HexToAddress("0x4444444444444444444444444444444444444444"),
				IdentifierOrCriteria: *uint256.NewInt(1),
				StartAmount:          *uint256.NewInt(100),
				EndAmount:            *uint256.NewInt(100),
				Recipient:            common.HexToAddress("0x1111111111111111111111111111111111111111"),
			}},
			OrderType: FullRestricted,
			EndTime:   *uint256.NewInt(1000),
		},
		Numerator:   1,
		Denominator: 1,
		Signature:   []byte{0xde, 0xad},
		ExtraData:   []byte{0xbe, 0xef},
	}
}

func TestOrderClone_SharesNoStorage(t *testing.T) {
	orig := sampleOrder()
	clone := orig.Clone()
	require.Equal(t, orig, clone)

	clone.Parameters.Offer[0].StartAmount = *uint256.NewInt(99)
	clone.Parameters.Consideration[0].IdentifierOrCriteria = *uint256.NewInt(2)
	clone.Signature[0] = 0x00
	clone.ExtraData[1] = 0x00

	assert.Equal(t, uint64(1), orig.Parameters.Offer[0].StartAmount.Uint64())
	assert.Equal(t, uint64(1), orig.Parameters.Consideration[0].IdentifierOrCriteria.Uint64())
	assert.Equal(t, byte(0xde), orig.Signature[0])
	assert.Equal(t, byte(0xef), orig.ExtraData[1])
}

func TestOrderClone_PreservesNil(t *testing.T) {
	clone := Order{}.Clone()
	assert.Nil(t, clone.Parameters.Offer)
	assert.Nil(t, clone.Parameters.Consideration)
	assert.Nil(t, clone.Signature)
	assert.Nil(t, clone.ExtraData)
}

func TestCloneOrders_NeverNil(t *testing.T) {
	assert.NotNil(t, CloneOrders(nil))
	assert.Len(t, CloneOrders(nil), 0)
	assert.NotNil(t, CloneCriteriaResolvers(nil))
	assert.NotNil(t, CloneSelectors(nil))
	assert.NotNil(t, CloneHashes(nil))
}

func TestCloneOrders_Independent(t *testing.T) {
	src := []Order{sampleOrder(), sampleOrder()}
	out := CloneOrders(src)

	src[0].Parameters.Consideration[0].Recipient = common.Address{}
	src[1] = Order{}

	assert.Equal(t, sampleOrder(), out[0])
	assert.Equal(t, sampleOrder(), out[1])
}

func TestCriteriaResolverClone(t *testing.T) {
	r := CriteriaResolver{
		OrderIndex:    1,
		Side:          SideConsideration,
		Index:         0,
		Identifier:    *uint256.NewInt(42),
		CriteriaProof: []common.Hash{common.HexToHash("0x01"), common.HexToHash("0x02")},
	}
	c := r.Clone()
	c.CriteriaProof[0] = common.Hash{}

	assert.Equal(t, common.HexToHash("0x01"), r.CriteriaProof[0])
}

func TestSelectorOf_ERC165(t *testing.T) {
	sel := SelectorOf("supportsInterface(bytes4)")
	assert.Equal(t, Selector{0x01, 0xff, 0xc9, 0xa7}, sel)
	assert.Equal(t, "0x01ffc9a7", sel.String())
}

func TestInterfaceID_XorOfSelectors(t *testing.T) {
	a := SelectorOf("a()")
	b := SelectorOf("b(uint256)")
	id := InterfaceID("a()", "b(uint256)")
	for i := range id {
		assert.Equal(t, a[i]^b[i], id[i])
	}
	assert.Equal(t, SelectorOf("a()"), InterfaceID("a()"))
	assert.True(t, InterfaceID().IsZero())
}

func TestSelectorText(t *testing.T) {
	var s Selector
	require.NoError(t, s.UnmarshalText([]byte("0x17b1f942")))
	assert.Equal(t, Selector{0x17, 0xb1, 0xf9, 0x42}, s)

	text, err := s.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "0x17b1f942", string(text))

	assert.Error(t, s.UnmarshalText([]byte("17b1f942")))
	assert.Error(t, s.UnmarshalText([]byte("0x17b1f9")))
}

func TestParseEnums(t *testing.T) {
	for it := ItemNative; it <= ItemERC1155WithCriteria; it++ {
		got, err := ParseItemType(it.String())
		require.NoError(t, err)
		assert.Equal(t, it, got)
	}
	for ot := FullOpen; ot <= Contract; ot++ {
		got, err := ParseOrderType(ot.String())
		require.NoError(t, err)
		assert.Equal(t, ot, got)
	}
	side, err := ParseSide("CONSIDERATION")
	require.NoError(t, err)
	assert.Equal(t, SideConsideration, side)

	_, err = ParseItemType("ERC777")
	assert.Error(t, err)
	_, err = ParseOrderType("")
	assert.Error(t, err)
	_, err = ParseSide("BOTH")
	assert.Error(t, err)

	assert.True(t, ItemERC721WithCriteria.HasCriteria())
	assert.False(t, ItemERC20.HasCriteria())
	assert.True(t, PartialRestricted.Restricted())
	assert.False(t, FullOpen.Restricted())
}

func TestZoneParametersFor(t *testing.T) {
	o := sampleOrder()
	fulfiller := common.HexToAddress("0x5555555555555555555555555555555555555555")
	hash := o.Digest()

	zp := ZoneParametersFor(o, fulfiller, hash, []common.Hash{hash})

	assert.Equal(t, hash, zp.OrderHash)
	assert.Equal(t, fulfiller, zp.Fulfiller)
	assert.Equal(t, o.Parameters.Offerer, zp.Offerer)
	require.Len(t, zp.Offer, 1)
	assert.Equal(t, uint64(7), zp.Offer[0].Identifier.Uint64())
	assert.Equal(t, uint64(1), zp.Offer[0].Amount.Uint64())
	require.Len(t, zp.Consideration, 1)
	assert.Equal(t, uint64(1), zp.Consideration[0].Identifier.Uint64())
	assert.Equal(t, uint64(100), zp.Consideration[0].Amount.Uint64())
	assert.Equal(t, o.Parameters.Consideration[0].Recipient, zp.Consideration[0].Recipient)
	assert.Equal(t, []common.Hash{hash}, zp.OrderHashes)

	// projection must not alias the order
	zp.ExtraData[0] = 0x00
	assert.Equal(t, byte(0xbe), o.ExtraData[0])
}

func TestDigest_SensitiveToConsiderationIdentifier(t *testing.T) {
	a := sampleOrder()
	b := sampleOrder()
	assert.Equal(t, a.Digest(), b.Digest())

	b.Parameters.Consideration[0].IdentifierOrCriteria = *uint256.NewInt(2)
	assert.NotEqual(t, a.Digest(), b.Digest())
}
