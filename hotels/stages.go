package hotels

// Stage is a state of the search pipeline.
type Stage int

const (
	StageExplicitIDs Stage = iota
	StageCityLookup
	StageStrictShortCircuit
	StageGeoExpansion
	StageMarketFallback
	StageTerminalEmpty
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageExplicitIDs:
		return "explicit-ids"
	case StageCityLookup:
		return "city-lookup"
	case StageStrictShortCircuit:
		return "strict-short-circuit"
	case StageGeoExpansion:
		return "geo-expansion"
	case StageMarketFallback:
		return "market-fallback"
	case StageTerminalEmpty:
		return "terminal-empty"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome is what a stage reports back to the transition function.
type Outcome int

const (
	OutcomeEmpty Outcome = iota
	OutcomeSuccess
	OutcomeTransportError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeTransportError:
		return "error"
	default:
		return "empty"
	}
}

// Plan carries the request facts the transition function branches on.
type Plan struct {
	HasExplicitIDs bool
	HasCity        bool
	HasGeo         bool
	Strict         bool
	MarketFallback bool
}

func planFor(req SearchRequest, marketFallback bool) Plan {
	return Plan{
		HasExplicitIDs: len(req.HotelIDs) > 0,
		HasCity:        req.HasCity(),
		HasGeo:         req.HasGeo(),
		Strict:         req.StrictCity,
		MarketFallback: marketFallback,
	}
}

// firstStage picks the entry state for a request.
func firstStage(p Plan) Stage {
	switch {
	case p.HasExplicitIDs:
		return StageExplicitIDs
	case p.HasCity:
		return StageCityLookup
	case p.HasGeo && !p.Strict:
		return StageGeoExpansion
	case p.HasGeo:
		return StageStrictShortCircuit
	default:
		return StageTerminalEmpty
	}
}

// nextStage is the pure transition function of the pipeline.
func nextStage(current Stage, p Plan, outcome Outcome) Stage {
	if outcome != OutcomeEmpty {
		return StageDone
	}

	switch current {
	case StageExplicitIDs:
		if p.HasCity {
			return StageCityLookup
		}
		return StageTerminalEmpty
	case StageCityLookup:
		switch {
		case p.Strict:
			return StageStrictShortCircuit
		case p.HasGeo:
			return StageGeoExpansion
		case p.MarketFallback:
			return StageMarketFallback
		default:
			return StageTerminalEmpty
		}
	case StageGeoExpansion:
		if p.MarketFallback && p.HasCity {
			return StageMarketFallback
		}
		return StageTerminalEmpty
	case StageMarketFallback:
		return StageTerminalEmpty
	default:
		return StageDone
	}
}

// emptyVia names the empty tag for a run that ended after from.
func emptyVia(from Stage) string {
	switch from {
	case StageExplicitIDs:
		return ViaEmptyExplicitIDs
	case StageStrictShortCircuit:
		return ViaEmptyStrictCity
	default:
		return ViaEmptyStaged
	}
}
