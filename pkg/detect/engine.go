package detect

// Engine detects tools in a stream of command lines, remembering the last
// successful (detector, strategy) pair. Consecutive lines of a build log
// overwhelmingly invoke the same compiler, so retrying the cached pair
// first gives O(1) amortized detection instead of a full registry scan.
//
// An engine is meant for sequential, call-by-call use by a single caller.
// Callers that process records in parallel must use one engine per worker;
// the registry and its parsers are immutable and may be shared.
type Engine struct {
	registry *Registry
	opts     Options
	last     *lastDetection
}

// lastDetection is the single cache slot: the pair that matched the
// previous line. Not an LRU; one slot covers the observed workload.
type lastDetection struct {
	detector *ToolDetector
	strategy DetectionStrategy
}

// NewEngine creates a detection engine over a registry. The options are
// fixed for the engine's lifetime.
func NewEngine(registry *Registry, opts Options) *Engine {
	return &Engine{registry: registry, opts: opts}
}

// Options returns the engine's detection options.
func (e *Engine) Options() Options {
	return e.opts
}

// Detect identifies the tool invoked by the command line. The cached pair
// from the previous call is retried first; if it fails to re-match the
// current line it is discarded and a full registry scan runs. A successful
// scan becomes the new cache entry. Returns nil when no registered tool
// matches.
func (e *Engine) Detect(line string) *DetectionOutcome {
	if e.last != nil {
		if m := e.retryLast(line); m != nil {
			return &DetectionOutcome{
				Detector: e.last.detector,
				Strategy: e.last.strategy,
				Match:    *m,
			}
		}
		e.last = nil
	}

	out := e.registry.Determine(line, e.opts)
	if out != nil {
		e.last = &lastDetection{detector: out.Detector, strategy: out.Strategy}
	}
	return out
}

// retryLast re-runs only the cached strategy on the cached detector. Cheap:
// no other registered tool is evaluated and version patterns come from the
// memo table.
func (e *Engine) retryLast(line string) *MatchResult {
	versioned := e.last.strategy == StrategyWithVersion ||
		e.last.strategy == StrategyWithVersionExtension
	if versioned && !e.opts.VersionMatching {
		return nil
	}
	return e.last.detector.MatchUsing(e.last.strategy, line, e.opts.MatchBackslash, e.opts.EffectiveVersionPattern())
}

// LastDetection exposes the cache slot contents; ok is false when the slot
// is empty.
func (e *Engine) LastDetection() (detector *ToolDetector, strategy DetectionStrategy, ok bool) {
	if e.last == nil {
		return nil, 0, false
	}
	return e.last.detector, e.last.strategy, true
}
