// internal/lexicon/datamuse.go
//
// Datamuse-backed implementation of Source.
//
// Endpoints used (GET /words):
//   - sp=<word>&md=f&max=1     → existence check with frequency metadata ("f:<per million>")
//   - rel_xxx=<word>&max=<n>   → related words for one relation kind, best first
//
// Frequency is normalized as min(1, perMillion/100). Any non-2xx response is an error;
// degrading errors to empty results is the caller's decision.

package lexicon

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Datamuse API.
const DefaultBaseURL = "https://api.datamuse.com"

// frequencyScale maps occurrences per million words onto 0..1.
const frequencyScale = 100.0

var relationParams = map[RelationKind]string{
	RelSynonym:          "rel_syn",
	RelTrigger:          "rel_trg",
	RelNounForAdjective: "rel_jja",
	RelAdjectiveForNoun: "rel_jjb",
	RelFollows:          "rel_bga",
	RelPrecedes:         "rel_bgb",
	RelSoundsLike:       "rel_cns",
}

// Datamuse queries the Datamuse word API over HTTP.
type Datamuse struct {
	baseURL string
	client  *http.Client
}

type datamuseWord struct {
	Word  string   `json:"word"`
	Score float64  `json:"score"`
	Tags  []string `json:"tags"`
}

// NewDatamuse creates a client for baseURL (DefaultBaseURL when empty).
func NewDatamuse(baseURL string, timeout time.Duration) *Datamuse {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Datamuse{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// VerifyWord looks the word up by exact spelling. Only an exact case-insensitive hit counts.
func (d *Datamuse) VerifyWord(ctx context.Context, word string) (Verified, bool, error) {
	q := url.Values{}
	q.Set("sp", word)
	q.Set("md", "f")
	q.Set("max", "1")

	res, err := d.get(ctx, q)
	if err != nil {
		return Verified{}, false, err
	}
	if len(res) == 0 || !strings.EqualFold(res[0].Word, strings.TrimSpace(word)) {
		return Verified{}, false, nil
	}
	return Verified{Word: res[0].Word, Frequency: parseFrequency(res[0].Tags)}, true, nil
}

// QueryRelated returns words related to word under kind, best match first.
func (d *Datamuse) QueryRelated(ctx context.Context, word string, kind RelationKind, max int) ([]Related, error) {
	param, ok := relationParams[kind]
	if !ok {
		return nil, fmt.Errorf("datamuse: unsupported relation %q", kind)
	}
	q := url.Values{}
	q.Set(param, word)
	if max > 0 {
		q.Set("max", strconv.Itoa(max))
	}

	res, err := d.get(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]Related, 0, len(res))
	for _, r := range res {
		out = append(out, Related{Word: r.Word, Score: r.Score})
	}
	return out, nil
}

func (d *Datamuse) get(ctx context.Context, q url.Values) ([]datamuseWord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+"/words?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("datamuse request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("datamuse: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("datamuse returned status: %s", resp.Status)
	}

	var out []datamuseWord
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("datamuse decode: %w", err)
	}
	return out, nil
}

// parseFrequency extracts the "f:<n>" metadata tag. Missing or malformed → 0.
func parseFrequency(tags []string) float64 {
	for _, t := range tags {
		v, ok := strings.CutPrefix(t, "f:")
		if !ok {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 {
			return 0
		}
		return min(1, n/frequencyScale)
	}
	return 0
}
