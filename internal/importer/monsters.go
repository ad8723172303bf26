// Package importer seeds the shared official monster catalog from the
// D&D 5e API (https://www.dnd5eapi.co). Imported rows have no owner
// and carry the official flag, making them visible to every user and
// mutable by none.
package importer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"lorekeep/internal/store"
)

const DefaultBaseURL = "https://www.dnd5eapi.co"

// defaultPause keeps the importer polite to the public API.
const defaultPause = 100 * time.Millisecond

type Importer struct {
	Store   store.Store
	Log     zerolog.Logger
	BaseURL string
	Client  *http.Client
	// Pause is the delay between detail fetches.
	Pause time.Duration
}

// Summary reports what one run did.
type Summary struct {
	Imported int
	Updated  int
	Failed   int
	Total    int
}

// Run imports or refreshes every monster in the index. Individual
// monster failures are logged and counted, not fatal; only index-level
// problems abort the run.
func (imp *Importer) Run(ctx context.Context) (Summary, error) {
	baseURL := imp.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := imp.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	pause := imp.Pause
	if pause == 0 {
		pause = defaultPause
	}

	var index monsterIndex
	if err := getJSON(ctx, client, baseURL+"/api/monsters", &index); err != nil {
		return Summary{}, fmt.Errorf("fetch monster index: %w", err)
	}
	imp.Log.Info().Int("count", len(index.Results)).Msg("fetched monster index")

	var summary Summary
	for _, ref := range index.Results {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		var detail monsterDetail
		if err := getJSON(ctx, client, baseURL+ref.URL, &detail); err != nil {
			summary.Failed++
			imp.Log.Warn().Err(err).Str("monster", ref.Name).Msg("fetch failed")
			continue
		}

		monster := detail.toCharacter()

		existing, err := imp.Store.GetOfficialCharacterByName(monster.Name)
		switch {
		case err == nil:
			monster.ID = existing.ID
			if err := imp.Store.UpdateOfficialCharacter(monster); err != nil {
				summary.Failed++
				imp.Log.Warn().Err(err).Str("monster", monster.Name).Msg("update failed")
				continue
			}
			summary.Updated++
		case errors.Is(err, sql.ErrNoRows):
			if _, err := imp.Store.CreateOfficialCharacter(monster); err != nil {
				summary.Failed++
				imp.Log.Warn().Err(err).Str("monster", monster.Name).Msg("insert failed")
				continue
			}
			summary.Imported++
		default:
			summary.Failed++
			imp.Log.Warn().Err(err).Str("monster", monster.Name).Msg("lookup failed")
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		case <-time.After(pause):
		}
	}

	if total, err := imp.Store.CountOfficialCharacters(); err == nil {
		summary.Total = total
	}
	imp.Log.Info().
		Int("imported", summary.Imported).
		Int("updated", summary.Updated).
		Int("failed", summary.Failed).
		Int("total", summary.Total).
		Msg("monster import complete")
	return summary, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
