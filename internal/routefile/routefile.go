// Package routefile loads user-authored route definitions from a JSON
// file: an array of route objects in the same shape the gateway stores.
package routefile

import (
	"encoding/json"
	"fmt"
	"os"

	zlog "github.com/rs/zerolog/log"

	"github.com/nirmaker/routerctl/internal/gateway"
)

// Load reads and decodes a routes file. Only structural shape is
// enforced; semantic problems (empty names, out-of-range thresholds)
// are logged as warnings and left for the gateway to accept or reject.
func Load(path string) ([]gateway.RouteDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}

	var routes []gateway.RouteDefinition
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes defined in %s", path)
	}

	log := zlog.With().Str("component", "routefile").Logger()
	for i, r := range routes {
		if r.Name == "" {
			log.Warn().Int("route", i).Msg("route has no model name")
		}
		if len(r.Utterances) == 0 {
			log.Warn().Int("route", i).Str("name", r.Name).Msg("route has no utterances")
		}
		if r.ScoreThreshold < 0 || r.ScoreThreshold > 1 {
			log.Warn().Int("route", i).Float64("score_threshold", r.ScoreThreshold).
				Msg("score_threshold outside [0, 1]")
		}
	}
	return routes, nil
}
