// Package harness runs fuzz scenarios against a protocol driver and checks
// the outcome.
//
// # Scenario Format
//
// Scenarios are YAML files describing one execution context plus the zones
// the dry-run driver should register:
//
//	name: identifier_zone_rejects
//	description: "Zone rejects orders whose first consideration id is not 1"
//	seed: 0
//	iterations: 4
//	executor:
//	  variant: reference
//	  address: "0x00000000000000000000000000000000000000a1"
//	checks:
//	  - check_anyOrderRejected()
//	orders:
//	  - offerer: "0x1111111111111111111111111111111111111111"
//	    zone: "0x2222222222222222222222222222222222222222"
//	    order_type: FULL_RESTRICTED
//	    consideration:
//	      - item_type: ERC20
//	        token: "0x4444444444444444444444444444444444444444"
//	        identifier: "2"
//	        start_amount: "100"
//	        end_amount: "100"
//	zones:
//	  - address: "0x2222222222222222222222222222222222222222"
//	    variant: identifier
//	    expected: "1"
//
// Files are checked against an embedded CUE schema (unknown fields, bad hex
// and bad enum names are rejected with positions) and then decoded strictly.
//
// # Campaigns
//
// A Campaign fans one base context out over a list of seeds. Each iteration
// derives its own context with WithFuzzParams, executes it through a Driver,
// and runs the context's checks in order. Iterations never share a context,
// so they run on a bounded worker pool without locks.
//
// # Deterministic Testing
//
// Iteration tokens come from a TokenGenerator; tests inject a counting or
// fixed generator so that results, and the golden snapshots built from
// them, are byte-identical across runs.
package harness
