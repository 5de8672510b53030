package betclic

// Anchors into the Betclic page payload. The script element id and the
// live-games key are observed values, not a published contract; when the
// site ships a new template they drift, which is why every descent below
// them is defensive.
const (
	// payloadScriptSelector locates the embedded JSON payload in the page.
	payloadScriptSelector = `script#ng-state[type="application/json"]`

	// liveGamesKey identifies the live-games section at the top level of
	// the payload.
	liveGamesKey = "1791897521"

	// groupedMarketsKey names the odds-bearing substructure, embedded at
	// a depth that differs across page templates.
	groupedMarketsKey = "grouped_markets"
)

// matchesPath descends from the live-games section to its match list.
var matchesPath = []string{"b", "matches"}

// defaultUserAgents is rotated across requests when the config does not
// provide its own list.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Firefox/88.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Safari/537.36 Edge/90.0.818.66",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Safari/537.36 OPR/76.0.4017.123",
}
