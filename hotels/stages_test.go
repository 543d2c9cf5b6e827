package hotels

import "testing"

func TestFirstStage(t *testing.T) {
	tests := []struct {
		name string
		plan Plan
		want Stage
	}{
		{"explicit ids win", Plan{HasExplicitIDs: true, HasCity: true, HasGeo: true}, StageExplicitIDs},
		{"city", Plan{HasCity: true, HasGeo: true}, StageCityLookup},
		{"geo only", Plan{HasGeo: true}, StageGeoExpansion},
		{"geo only strict", Plan{HasGeo: true, Strict: true}, StageStrictShortCircuit},
		{"strict without location", Plan{Strict: true}, StageTerminalEmpty},
		{"nothing", Plan{}, StageTerminalEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstStage(tt.plan); got != tt.want {
				t.Errorf("firstStage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextStage(t *testing.T) {
	tests := []struct {
		name    string
		current Stage
		plan    Plan
		outcome Outcome
		want    Stage
	}{
		{"success ends run", StageCityLookup, Plan{HasCity: true}, OutcomeSuccess, StageDone},
		{"error ends run", StageGeoExpansion, Plan{HasGeo: true}, OutcomeTransportError, StageDone},
		{"explicit empty no city", StageExplicitIDs, Plan{HasExplicitIDs: true, HasGeo: true}, OutcomeEmpty, StageTerminalEmpty},
		{"explicit empty with city", StageExplicitIDs, Plan{HasExplicitIDs: true, HasCity: true}, OutcomeEmpty, StageCityLookup},
		{"city empty strict", StageCityLookup, Plan{HasCity: true, HasGeo: true, Strict: true, MarketFallback: true}, OutcomeEmpty, StageStrictShortCircuit},
		{"city empty with geo", StageCityLookup, Plan{HasCity: true, HasGeo: true, MarketFallback: true}, OutcomeEmpty, StageGeoExpansion},
		{"city empty to market", StageCityLookup, Plan{HasCity: true, MarketFallback: true}, OutcomeEmpty, StageMarketFallback},
		{"city empty no market", StageCityLookup, Plan{HasCity: true}, OutcomeEmpty, StageTerminalEmpty},
		{"geo empty to market", StageGeoExpansion, Plan{HasCity: true, HasGeo: true, MarketFallback: true}, OutcomeEmpty, StageMarketFallback},
		{"geo only empty", StageGeoExpansion, Plan{HasGeo: true, MarketFallback: true}, OutcomeEmpty, StageTerminalEmpty},
		{"market empty", StageMarketFallback, Plan{HasCity: true, MarketFallback: true}, OutcomeEmpty, StageTerminalEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextStage(tt.current, tt.plan, tt.outcome); got != tt.want {
				t.Errorf("nextStage(%v) = %v, want %v", tt.current, got, tt.want)
			}
		})
	}
}

func TestEmptyVia(t *testing.T) {
	if got := emptyVia(StageExplicitIDs); got != ViaEmptyExplicitIDs {
		t.Errorf("Expected %q, got %q", ViaEmptyExplicitIDs, got)
	}
	if got := emptyVia(StageStrictShortCircuit); got != ViaEmptyStrictCity {
		t.Errorf("Expected %q, got %q", ViaEmptyStrictCity, got)
	}
	if got := emptyVia(StageMarketFallback); got != ViaEmptyStaged {
		t.Errorf("Expected %q, got %q", ViaEmptyStaged, got)
	}
}
