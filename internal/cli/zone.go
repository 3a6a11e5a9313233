package cli

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/roach88/seaharness/internal/harness"
	"github.com/roach88/seaharness/internal/order"
	"github.com/roach88/seaharness/internal/zone"
)

// ZoneOptions holds flags shared by the zone subcommands.
type ZoneOptions struct {
	*RootOptions
	Variant  string
	Expected string
}

// ZoneDescription is the output of zone describe for one variant.
type ZoneDescription struct {
	Variant     string          `json:"variant"`
	Name        string          `json:"name"`
	Schemas     []SchemaInfo    `json:"schemas"`
	InterfaceID string          `json:"interface_id"`
	MagicValue  string          `json:"magic_value"`
	Supports    map[string]bool `json:"supports"`
}

// SchemaInfo is a metadata schema in display form.
type SchemaInfo struct {
	ID       uint64 `json:"id"`
	Metadata string `json:"metadata"`
}

// ZoneVerdict is the output of zone validate for one order.
type ZoneVerdict struct {
	Order      int    `json:"order"`
	Zone       string `json:"zone"`
	Restricted bool   `json:"restricted"`
	Oracle     string `json:"oracle,omitempty"`
	Decision   string `json:"decision,omitempty"`
	Response   string `json:"response,omitempty"`
	Aborted    string `json:"aborted,omitempty"`
	Unbound    bool   `json:"unbound,omitempty"`
}

// NewZoneCommand creates the zone command group.
func NewZoneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ZoneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect and exercise zone oracles",
	}
	cmd.PersistentFlags().StringVar(&opts.Variant, "variant", "",
		fmt.Sprintf("oracle variant (%s)", strings.Join(zone.Variants, "|")))
	cmd.PersistentFlags().StringVar(&opts.Expected, "expected", "1",
		"sentinel identifier for the identifier variant (decimal or 0x hex)")

	cmd.AddCommand(newZoneDescribeCommand(opts))
	cmd.AddCommand(newZoneValidateCommand(opts))
	return cmd
}

func newZoneDescribeCommand(opts *ZoneOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Print oracle metadata and supported interfaces",
		Long: `Print the name, metadata schemas and interface ids of each oracle
variant, or of the one chosen with --variant.

Examples:
  seaharness zone describe
  seaharness zone describe --variant identifier --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZoneDescribe(opts, cmd)
		},
	}
}

func newZoneValidateCommand(opts *ZoneOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario>",
		Short: "Ask an oracle about every order in a scenario",
		Long: `Project each order of a scenario into zone parameters and ask an
oracle whether it may be fulfilled. Without --variant, each order goes to
the oracle the scenario binds at the order's zone address.

Rejections are reported, not treated as failures. An oracle call that
aborts exits with status 1.

Examples:
  seaharness zone validate ./scenario.yaml
  seaharness zone validate ./scenario.yaml --variant identifier --expected 2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runZoneValidate(opts, args[0], cmd)
		},
	}
}

// oracleFromFlags builds the oracle selected by --variant, or returns nil
// when no variant was given.
func oracleFromFlags(opts *ZoneOptions) (zone.Oracle, error) {
	if opts.Variant == "" {
		return nil, nil
	}
	expected, err := parseUint256(opts.Expected)
	if err != nil {
		return nil, fmt.Errorf("--expected: %w", err)
	}
	return zone.New(opts.Variant, expected)
}

func parseUint256(s string) (uint256.Int, error) {
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
		return uint256.Int{}, fmt.Errorf("invalid uint256 %q: %w", s, err)
	}
	return *v, nil
}

func describe(variant string, o zone.Oracle) ZoneDescription {
	name, schemas := o.SeaportMetadata()
	d := ZoneDescription{
		Variant:     variant,
		Name:        name,
		Schemas:     make([]SchemaInfo, len(schemas)),
		InterfaceID: zone.InterfaceID.String(),
		MagicValue:  zone.MagicValue.String(),
		Supports: map[string]bool{
			zone.InterfaceID.String():       o.SupportsInterface(zone.InterfaceID),
			zone.ERC165InterfaceID.String(): o.SupportsInterface(zone.ERC165InterfaceID),
			"0xffffffff":                    o.SupportsInterface(order.Selector{0xff, 0xff, 0xff, 0xff}),
		},
	}
	for i, s := range schemas {
		d.Schemas[i] = SchemaInfo{ID: s.ID, Metadata: hexutil.Encode(s.Metadata)}
	}
	return d
}

func runZoneDescribe(opts *ZoneOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	variants := zone.Variants
	if opts.Variant != "" {
		variants = []string{opts.Variant}
	}
	expected, err := parseUint256(opts.Expected)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --expected", err)
	}

	descs := make([]ZoneDescription, 0, len(variants))
	for _, v := range variants {
		o, err := zone.New(v, expected)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --variant", err)
		}
		descs = append(descs, describe(v, o))
	}

	if f.JSON() {
		return f.Success(descs)
	}

	w := cmd.OutOrStdout()
	for i, d := range descs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%s)\n", d.Name, d.Variant)
		fmt.Fprintf(w, "  interface id: %s\n", d.InterfaceID)
		fmt.Fprintf(w, "  magic value:  %s\n", d.MagicValue)
		for _, s := range d.Schemas {
			fmt.Fprintf(w, "  schema %d:     %s\n", s.ID, s.Metadata)
		}
		for _, id := range []string{zone.InterfaceID.String(), zone.ERC165InterfaceID.String(), "0xffffffff"} {
			fmt.Fprintf(w, "  supports %s: %t\n", id, d.Supports[id])
		}
	}
	return nil
}

func runZoneValidate(opts *ZoneOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	s, err := harness.LoadScenario(path)
	if err != nil {
		return f.fail(ExitCommandError, CodeScenarioInvalid, "failed to load scenario", err)
	}
	fixed, err := oracleFromFlags(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid oracle flags", err)
	}
	reg, err := s.Registry()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to bind scenario zones", err)
	}

	tc := s.Context()
	orders := tc.Orders()
	digests := make([]common.Hash, len(orders))
	for i := range orders {
		digests[i] = orders[i].Digest()
	}
	fulfiller := harness.Fulfiller(tc)

	verdicts := make([]ZoneVerdict, len(orders))
	aborted := 0
	for i, o := range orders {
		v := ZoneVerdict{
			Order:      i,
			Zone:       o.Parameters.Zone.Hex(),
			Restricted: o.Parameters.OrderType.Restricted(),
		}
		oracle := fixed
		if oracle == nil {
			var ok bool
			if oracle, ok = reg.Lookup(o.Parameters.Zone); !ok {
				v.Unbound = true
				verdicts[i] = v
				continue
			}
		}
		v.Oracle, _ = oracle.SeaportMetadata()

		params := order.ZoneParametersFor(o, fulfiller, digests[i], digests)
		resp, err := zone.Call(oracle, params)
		if err != nil {
			v.Aborted = err.Error()
			aborted++
		} else {
			v.Decision = zone.Interpret(resp).String()
			v.Response = hexutil.Encode(resp)
		}
		verdicts[i] = v
	}

	if !f.JSON() {
		w := cmd.OutOrStdout()
		for _, v := range verdicts {
			switch {
			case v.Unbound:
				fmt.Fprintf(w, "[%d] zone %s: no oracle bound\n", v.Order, v.Zone)
			case v.Aborted != "":
				fmt.Fprintf(w, "[%d] zone %s: %s aborted: %s\n", v.Order, v.Zone, v.Oracle, v.Aborted)
			default:
				fmt.Fprintf(w, "[%d] zone %s: %s %s (response %s)\n", v.Order, v.Zone, v.Oracle, v.Decision, v.Response)
			}
		}
	}

	if aborted > 0 {
		msg := fmt.Sprintf("%d zone call(s) aborted", aborted)
		if f.JSON() {
			_ = f.Failure(CodeZoneAborted, msg, verdicts)
		}
		return NewExitError(ExitFailure, msg)
	}
	if f.JSON() {
		return f.Success(verdicts)
	}
	return nil
}
