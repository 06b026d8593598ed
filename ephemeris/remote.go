/*
remote.go - HTTP client for a hosted ephemeris API

PURPOSE:
  Implements both provider interfaces against a remote JSON astrology API.
  Hosted ephemeris services are loose about casing - the same deployment
  can answer "sunLongitude" on one endpoint and "sun_longitude" on another.
  Rather than spreading that ambiguity through the codebase, every payload
  passes through one normalization step (normalizeKeys) that folds all keys
  to snake_case before the typed decode.

FAILURE SEMANTICS:
  Network errors, non-2xx statuses, and malformed payloads all surface as
  *panchang.ProviderError wrapping ErrUpstreamUnavailable. No retries here;
  retry policy belongs to the caller.

ENDPOINTS:
  GET {base}/v1/positions?at=RFC3339&latitude=F&longitude=F
  GET {base}/v1/riseset?date=YYYY-MM-DD&latitude=F&longitude=F&timezone=ID

SEE ALSO:
  - local.go: in-process fallback provider
*/
package ephemeris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/supernova/panchang-engine/panchang"
)

// =============================================================================
// REMOTE PROVIDER
// =============================================================================

// Remote is an HTTP-backed ephemeris provider.
type Remote struct {
	baseURL string
	client  *http.Client
}

// NewRemote creates a remote provider for the given base URL. A nil client
// falls back to a default with a 10s timeout.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Remote{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// =============================================================================
// KEY NORMALIZATION - the single adapter for casing ambiguity
// =============================================================================

// snakeCase converts camelCase keys to snake_case; keys already in
// snake_case pass through unchanged.
func snakeCase(key string) string {
	var b strings.Builder
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// normalizeKeys re-keys a decoded JSON object so that every field is
// addressable by its snake_case name regardless of what the API sent.
func normalizeKeys(raw map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(raw))
	for k, v := range raw {
		out[snakeCase(k)] = v
	}
	return out
}

// decodeNormalized decodes an HTTP body into v after folding keys.
func decodeNormalized(body io.Reader, v any) error {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	merged, err := json.Marshal(normalizeKeys(raw))
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, v)
}

// =============================================================================
// WIRE TYPES - snake_case only; normalization happens before decode
// =============================================================================

type positionsPayload struct {
	SunLongitude  float64 `json:"sun_longitude"`
	MoonLongitude float64 `json:"moon_longitude"`
	MoonNakshatra string  `json:"moon_nakshatra"`
	MoonPada      int     `json:"moon_pada"`
}

type riseSetPayload struct {
	Sunrise     string `json:"sunrise"`  // RFC3339 or empty
	Sunset      string `json:"sunset"`   // RFC3339 or empty
	Moonrise    string `json:"moonrise"` // RFC3339 or empty
	Moonset     string `json:"moonset"`  // RFC3339 or empty
	RahuKalam   string `json:"rahu_kalam"`
	YamaGanda   string `json:"yama_ganda"`
	GulikaKalam string `json:"gulika_kalam"`
}

// =============================================================================
// PROVIDER IMPLEMENTATION
// =============================================================================

func (r *Remote) get(ctx context.Context, path string, query url.Values, v any) error {
	u := fmt.Sprintf("%s%s?%s", r.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return decodeNormalized(resp.Body, v)
}

// Longitudes implements LongitudeProvider over HTTP.
func (r *Remote) Longitudes(ctx context.Context, at time.Time, lat, lon float64) (Longitudes, error) {
	q := url.Values{}
	q.Set("at", at.UTC().Format(time.RFC3339))
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))

	var p positionsPayload
	if err := r.get(ctx, "/v1/positions", q, &p); err != nil {
		return Longitudes{}, &panchang.ProviderError{Provider: "longitude", Date: at, Err: err}
	}
	if err := panchang.CheckLongitudes(p.SunLongitude, p.MoonLongitude); err != nil {
		return Longitudes{}, &panchang.ProviderError{Provider: "longitude", Date: at, Err: err}
	}

	return Longitudes{
		SunDeg:        p.SunLongitude,
		MoonDeg:       p.MoonLongitude,
		MoonNakshatra: p.MoonNakshatra,
		MoonPada:      p.MoonPada,
	}, nil
}

// RiseSet implements RiseSetProvider over HTTP.
func (r *Remote) RiseSet(ctx context.Context, year int, month time.Month, day int, lat, lon float64, loc *time.Location) (RiseSet, error) {
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)

	q := url.Values{}
	q.Set("date", date.Format("2006-01-02"))
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("timezone", loc.String())

	var p riseSetPayload
	if err := r.get(ctx, "/v1/riseset", q, &p); err != nil {
		return RiseSet{}, &panchang.ProviderError{Provider: "riseset", Date: date, Err: err}
	}

	rs := RiseSet{
		RahuKalam:   p.RahuKalam,
		YamaGanda:   p.YamaGanda,
		GulikaKalam: p.GulikaKalam,
	}
	rs.Sunrise = parseEvent(p.Sunrise, loc)
	rs.Sunset = parseEvent(p.Sunset, loc)
	rs.Moonrise = parseEvent(p.Moonrise, loc)
	rs.Moonset = parseEvent(p.Moonset, loc)
	return rs, nil
}

// parseEvent parses an optional RFC3339 event time. Empty or malformed
// values degrade to absent rather than failing the whole day.
func parseEvent(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	local := t.In(loc)
	return &local
}
