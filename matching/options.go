// Package matching: functional configuration for NewProblem.
//
// Defaults mirror the strictest useful problem: zero thresholds (exact
// matching), zero initial costs, no attribute cost functions. Options are
// validated inside NewProblem so misconfiguration surfaces as a fatal
// constructor error, never later in the pipeline.
package matching

import (
	"gonum.org/v1/gonum/mat"

	"github.com/noctilum/submatch/graph"
)

// Default configuration values.
const (
	// DefaultLocalCostThreshold bounds the number of missing edges a single
	// template node may tolerate in an eventual match.
	DefaultLocalCostThreshold = 0.0

	// DefaultGlobalCostThreshold bounds the total cost of a match; 0 means
	// exact matching.
	DefaultGlobalCostThreshold = 0.0

	// DefaultCandidatePrintLimit caps per-node candidate listings in the
	// human-readable summary. Diagnostic only, never behavioral.
	DefaultCandidatePrintLimit = 10
)

// NodeCostFn returns a non-negative attribute mismatch cost for assigning a
// template node to a world node, both given by identifier.
type NodeCostFn func(tmpltNode, worldNode string) float64

// EdgeCostFn returns a non-negative attribute mismatch cost between a
// template edge and a candidate world edge.
type EdgeCostFn func(tmpltEdge, worldEdge graph.Edge) float64

// Option configures a Problem under construction.
type Option func(*config)

// config collects option state before validation.
type config struct {
	fixed, local, global *mat.Dense
	candidates           [][]bool
	localThreshold       float64
	globalThreshold      float64
	nodeCostFn           NodeCostFn
	edgeCostFn           EdgeCostFn
	groundTruthProvided  bool
	candidatePrintLimit  int
}

func defaultConfig() config {
	return config{
		localThreshold:      DefaultLocalCostThreshold,
		globalThreshold:     DefaultGlobalCostThreshold,
		candidatePrintLimit: DefaultCandidatePrintLimit,
	}
}

// WithFixedCosts supplies an initial fixed cost array (n×m).
func WithFixedCosts(d *mat.Dense) Option { return func(c *config) { c.fixed = d } }

// WithLocalCosts supplies an initial local cost array (n×m).
func WithLocalCosts(d *mat.Dense) Option { return func(c *config) { c.local = d } }

// WithGlobalCosts supplies an initial global cost array (n×m).
func WithGlobalCosts(d *mat.Dense) Option { return func(c *config) { c.global = d } }

// WithCandidates forces an initial candidate mask: pairs outside the mask
// get +Inf fixed cost and can never become candidates again.
func WithCandidates(mask [][]bool) Option { return func(c *config) { c.candidates = mask } }

// WithLocalCostThreshold sets the per-node missing-edge tolerance.
// Negative or NaN values are rejected by NewProblem; +Inf is allowed.
func WithLocalCostThreshold(v float64) Option { return func(c *config) { c.localThreshold = v } }

// WithGlobalCostThreshold sets the total match cost tolerance.
// Negative or NaN values are rejected by NewProblem; +Inf is allowed.
func WithGlobalCostThreshold(v float64) Option { return func(c *config) { c.globalThreshold = v } }

// WithNodeCostFn installs a node attribute mismatch function consumed by the
// nodewise cost bound. Absent, attributes are treated as compatible.
func WithNodeCostFn(fn NodeCostFn) Option { return func(c *config) { c.nodeCostFn = fn } }

// WithEdgeCostFn installs an edge attribute mismatch function consumed by
// the attribute-aware edgewise cost bound.
func WithEdgeCostFn(fn EdgeCostFn) Option { return func(c *config) { c.edgeCostFn = fn } }

// WithGroundTruth marks the problem as carrying an injected ground-truth
// signal whose world node identifiers match the template's. Diagnostic only.
func WithGroundTruth() Option { return func(c *config) { c.groundTruthProvided = true } }

// WithCandidatePrintLimit caps candidate listings in String().
func WithCandidatePrintLimit(n int) Option { return func(c *config) { c.candidatePrintLimit = n } }
