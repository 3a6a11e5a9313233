package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/roach88/seaharness/internal/fuzzctx"
	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/zone"
)

// DefaultIterations is used when a scenario does not say how many seeds to
// run.
const DefaultIterations = 1

// Scenario is a decoded scenario file: one base context plus the zones the
// dry-run driver registers.
type Scenario struct {
	Name        string
	Description string

	// Seed is the first seed of the campaign; Iterations seeds follow it.
	Seed       uint64
	Iterations int

	Executor            fuzzctx.Executor
	Caller              common.Address
	Checks              []order.Selector
	Orders              []order.Order
	Counter             uint256.Int
	FulfillerConduitKey common.Hash
	CriteriaResolvers   []order.CriteriaResolver
	Recipient           common.Address

	Zones []ZoneBinding
}

// ZoneBinding places an oracle variant at an address.
type ZoneBinding struct {
	Address  common.Address
	Variant  string
	Expected uint256.Int
}

// The file DTOs keep every numeric and hex field as a string so that large
// integers survive YAML decoding and parse errors can name the field.
type scenarioFile struct {
	Name                string            `yaml:"name"`
	Description         string            `yaml:"description"`
	Seed                uint64            `yaml:"seed"`
	Iterations          int               `yaml:"iterations"`
	Executor            executorFile      `yaml:"executor"`
	Caller              string            `yaml:"caller"`
	Checks              []string          `yaml:"checks"`
	Orders              []orderFile       `yaml:"orders"`
	Counter             string            `yaml:"counter"`
	FulfillerConduitKey string            `yaml:"fulfiller_conduit_key"`
	CriteriaResolvers   []resolverFile    `yaml:"criteria_resolvers"`
	Recipient           string            `yaml:"recipient"`
	Zones               []zoneBindingFile `yaml:"zones"`
}

type executorFile struct {
	Variant string `yaml:"variant"`
	Address string `yaml:"address"`
}

type itemFile struct {
	ItemType    string `yaml:"item_type"`
	Token       string `yaml:"token"`
	Identifier  string `yaml:"identifier"`
	StartAmount string `yaml:"start_amount"`
	EndAmount   string `yaml:"end_amount"`
	Recipient   string `yaml:"recipient"`
}

type orderFile struct {
	Offerer       string     `yaml:"offerer"`
	Zone          string     `yaml:"zone"`
	OrderType     string     `yaml:"order_type"`
	Offer         []itemFile `yaml:"offer"`
	Consideration []itemFile `yaml:"consideration"`
	StartTime     string     `yaml:"start_time"`
	EndTime       string     `yaml:"end_time"`
	ZoneHash      string     `yaml:"zone_hash"`
	Salt          string     `yaml:"salt"`
	ConduitKey    string     `yaml:"conduit_key"`
	Numerator     uint64     `yaml:"numerator"`
	Denominator   uint64     `yaml:"denominator"`
	Signature     string     `yaml:"signature"`
	ExtraData     string     `yaml:"extra_data"`

	TotalOriginalConsiderationItems string `yaml:"total_original_consideration_items"`
}

type resolverFile struct {
	OrderIndex    uint64   `yaml:"order_index"`
	Side          string   `yaml:"side"`
	Index         uint64   `yaml:"index"`
	Identifier    string   `yaml:"identifier"`
	CriteriaProof []string `yaml:"criteria_proof"`
}

type zoneBindingFile struct {
	Address  string `yaml:"address"`
	Variant  string `yaml:"variant"`
	Expected string `yaml:"expected"`
}

// LoadScenario reads, schema-checks and decodes a scenario YAML file.
// Unknown fields, malformed hex and unknown enum names are errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(path, data)
}

// ParseScenario decodes scenario YAML already in memory. filename is used
// for error positions only.
func ParseScenario(filename string, data []byte) (*Scenario, error) {
	if err := ValidateSchema(filename, data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	var file scenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	s, err := file.decode()
	if err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := validateScenario(s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return s, nil
}

// validateScenario checks cross-field constraints the schema cannot express.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Iterations < 1 {
		return fmt.Errorf("iterations must be at least 1, got %d", s.Iterations)
	}

	seen := make(map[common.Address]bool, len(s.Zones))
	for i, z := range s.Zones {
		if seen[z.Address] {
			return fmt.Errorf("zones[%d]: address %s bound twice", i, z.Address.Hex())
		}
		seen[z.Address] = true
	}

	for i, r := range s.CriteriaResolvers {
		if r.OrderIndex >= uint64(len(s.Orders)) {
			return fmt.Errorf("criteria_resolvers[%d]: order_index %d out of range (%d orders)",
				i, r.OrderIndex, len(s.Orders))
		}
	}
	return nil
}

// Context builds the scenario's base context. The fuzz seed is s.Seed;
// campaigns override it per iteration.
func (s *Scenario) Context() fuzzctx.TestContext {
	return fuzzctx.Empty().
		WithOrders(s.Orders).
		WithExecutor(s.Executor).
		WithCaller(s.Caller).
		WithFuzzParams(fuzzctx.FuzzParams{Seed: s.Seed}).
		WithChecks(s.Checks).
		WithCounter(s.Counter).
		WithFulfillerConduitKey(s.FulfillerConduitKey).
		WithCriteriaResolvers(s.CriteriaResolvers).
		WithRecipient(s.Recipient)
}

// Registry builds a zone registry holding one oracle per binding.
func (s *Scenario) Registry() (*zone.Registry, error) {
	reg := zone.NewRegistry()
	for i, b := range s.Zones {
		o, err := zone.New(b.Variant, b.Expected)
		if err != nil {
			return nil, fmt.Errorf("zones[%d]: %w", i, err)
		}
		if err := reg.Register(b.Address, o); err != nil {
			return nil, fmt.Errorf("zones[%d]: %w", i, err)
		}
	}
	return reg, nil
}

// Seeds returns the campaign seeds s.Seed .. s.Seed+Iterations-1.
func (s *Scenario) Seeds() []uint64 {
	return SeedRange(s.Seed, s.Iterations)
}

func (f *scenarioFile) decode() (*Scenario, error) {
	s := &Scenario{
		Name:        f.Name,
		Description: f.Description,
		Seed:        f.Seed,
		Iterations:  f.Iterations,
		Executor:    fuzzctx.Executor{Variant: f.Executor.Variant},
	}
	if s.Iterations == 0 {
		s.Iterations = DefaultIterations
	}

	var err error
	if s.Executor.Address, err = parseAddress("executor.address", f.Executor.Address); err != nil {
		return nil, err
	}
	if s.Caller, err = parseAddress("caller", f.Caller); err != nil {
		return nil, err
	}
	if s.Recipient, err = parseAddress("recipient", f.Recipient); err != nil {
		return nil, err
	}
	if s.Counter, err = parseUint("counter", f.Counter); err != nil {
		return nil, err
	}
	if s.FulfillerConduitKey, err = parseHash("fulfiller_conduit_key", f.FulfillerConduitKey); err != nil {
		return nil, err
	}

	s.Checks = make([]order.Selector, len(f.Checks))
	for i, c := range f.Checks {
		if s.Checks[i], err = parseCheck(c); err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
	}

	s.Orders = make([]order.Order, len(f.Orders))
	for i := range f.Orders {
		if s.Orders[i], err = f.Orders[i].decode(fmt.Sprintf("orders[%d]", i)); err != nil {
			return nil, err
		}
	}

	s.CriteriaResolvers = make([]order.CriteriaResolver, len(f.CriteriaResolvers))
	for i := range f.CriteriaResolvers {
		if s.CriteriaResolvers[i], err = f.CriteriaResolvers[i].decode(fmt.Sprintf("criteria_resolvers[%d]", i)); err != nil {
			return nil, err
		}
	}

	s.Zones = make([]ZoneBinding, len(f.Zones))
	for i, z := range f.Zones {
		field := fmt.Sprintf("zones[%d]", i)
		b := ZoneBinding{Variant: z.Variant}
		if b.Address, err = parseAddress(field+".address", z.Address); err != nil {
			return nil, err
		}
		if b.Expected, err = parseUint(field+".expected", z.Expected); err != nil {
			return nil, err
		}
		s.Zones[i] = b
	}
	return s, nil
}

func (f *orderFile) decode(field string) (order.Order, error) {
	var (
		o   order.Order
		p   = &o.Parameters
		err error
	)
	if p.Offerer, err = parseAddress(field+".offerer", f.Offerer); err != nil {
		return o, err
	}
	if p.Zone, err = parseAddress(field+".zone", f.Zone); err != nil {
		return o, err
	}
	if f.OrderType != "" {
		if p.OrderType, err = order.ParseOrderType(f.OrderType); err != nil {
			return o, fmt.Errorf("%s.order_type: %w", field, err)
		}
	}

	p.Offer = make([]order.OfferItem, len(f.Offer))
	for i, item := range f.Offer {
		it, err := item.decode(fmt.Sprintf("%s.offer[%d]", field, i))
		if err != nil {
			return o, err
		}
		p.Offer[i] = order.OfferItem{
			ItemType:             it.ItemType,
			Token:                it.Token,
			IdentifierOrCriteria: it.IdentifierOrCriteria,
			StartAmount:          it.StartAmount,
			EndAmount:            it.EndAmount,
		}
	}
	p.Consideration = make([]order.ConsiderationItem, len(f.Consideration))
	for i, item := range f.Consideration {
		if p.Consideration[i], err = item.decode(fmt.Sprintf("%s.consideration[%d]", field, i)); err != nil {
			return o, err
		}
	}

	uints := []struct {
		name string
		raw  string
		dst  *uint256.Int
	}{
		{"start_time", f.StartTime, &p.StartTime},
		{"end_time", f.EndTime, &p.EndTime},
		{"salt", f.Salt, &p.Salt},
		{"total_original_consideration_items", f.TotalOriginalConsiderationItems, &p.TotalOriginalConsiderationItems},
	}
	for _, u := range uints {
		if *u.dst, err = parseUint(field+"."+u.name, u.raw); err != nil {
			return o, err
		}
	}
	if f.TotalOriginalConsiderationItems == "" {
		p.TotalOriginalConsiderationItems.SetUint64(uint64(len(p.Consideration)))
	}

	if p.ZoneHash, err = parseHash(field+".zone_hash", f.ZoneHash); err != nil {
		return o, err
	}
	if p.ConduitKey, err = parseHash(field+".conduit_key", f.ConduitKey); err != nil {
		return o, err
	}

	o.Numerator, o.Denominator = f.Numerator, f.Denominator
	if o.Numerator == 0 && o.Denominator == 0 {
		o.Numerator, o.Denominator = 1, 1
	}
	if o.Signature, err = parseBytes(field+".signature", f.Signature); err != nil {
		return o, err
	}
	if o.ExtraData, err = parseBytes(field+".extra_data", f.ExtraData); err != nil {
		return o, err
	}
	return o, nil
}

// decode returns a consideration item; offer items take the common fields.
func (f *itemFile) decode(field string) (order.ConsiderationItem, error) {
	var (
		it  order.ConsiderationItem
		err error
	)
	if it.ItemType, err = order.ParseItemType(f.ItemType); err != nil {
		return it, fmt.Errorf("%s.item_type: %w", field, err)
	}
	if it.Token, err = parseAddress(field+".token", f.Token); err != nil {
		return it, err
	}
	if it.IdentifierOrCriteria, err = parseUint(field+".identifier", f.Identifier); err != nil {
		return it, err
	}
	if it.StartAmount, err = parseUint(field+".start_amount", f.StartAmount); err != nil {
		return it, err
	}
	if it.EndAmount, err = parseUint(field+".end_amount", f.EndAmount); err != nil {
		return it, err
	}
	if f.EndAmount == "" {
		it.EndAmount = it.StartAmount
	}
	if it.Recipient, err = parseAddress(field+".recipient", f.Recipient); err != nil {
		return it, err
	}
	return it, nil
}

func (f *resolverFile) decode(field string) (order.CriteriaResolver, error) {
	r := order.CriteriaResolver{OrderIndex: f.OrderIndex, Index: f.Index}
	var err error
	if r.Side, err = order.ParseSide(f.Side); err != nil {
		return r, fmt.Errorf("%s.side: %w", field, err)
	}
	if r.Identifier, err = parseUint(field+".identifier", f.Identifier); err != nil {
		return r, err
	}
	r.CriteriaProof = make([]common.Hash, len(f.CriteriaProof))
	for i, h := range f.CriteriaProof {
		if r.CriteriaProof[i], err = parseHash(fmt.Sprintf("%s.criteria_proof[%d]", field, i), h); err != nil {
			return r, err
		}
	}
	return r, nil
}

// parseCheck accepts either a function signature such as
// "check_allOrdersApproved()" or a raw 0x-prefixed selector.
func parseCheck(s string) (order.Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return order.Selector{}, fmt.Errorf("empty check")
	}
	if strings.HasPrefix(s, "0x") {
		var sel order.Selector
		if err := sel.UnmarshalText([]byte(s)); err != nil {
			return order.Selector{}, err
		}
		return sel, nil
	}
	if !strings.HasSuffix(s, ")") || !strings.Contains(s, "(") {
		return order.Selector{}, fmt.Errorf("check %q is neither a signature nor a 0x selector", s)
	}
	return order.SelectorOf(s), nil
}

// Empty strings decode to zero values in all the parse helpers.

func parseAddress(field, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("%s: invalid address %q", field, s)
	}
	return common.HexToAddress(s), nil
}

func parseHash(field, s string) (common.Hash, error) {
	if s == "" {
		return common.Hash{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s: %w", field, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("%s: want %d bytes, got %d", field, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

func parseUint(field, s string) (uint256.Int, error) {
	if s == "" {
		return uint256.Int{}, nil
	}
	var (
		v   *uint256.Int
		err error
	)
	if strings.HasPrefix(s, "0x") {
		v, err = uint256.FromHex(s)
	} else {
		v, err = uint256.FromDecimal(s)
	}
	if err != nil {
		return uint256.Int{}, fmt.Errorf("%s: invalid uint256 %q: %w", field, s, err)
	}
	return *v, nil
}

func parseBytes(field, s string) (hexutil.Bytes, error) {
	if s == "" {
		return hexutil.Bytes{}, nil
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return b, nil
}
