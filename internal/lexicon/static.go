package lexicon

import (
	"context"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// Static is an in-memory Source, used for offline play and tests.
// Words maps lower-cased words to their dictionary entry; Links maps
// "kind|source" (source lower-cased) to related words, best first.
type Static struct {
	mu    sync.RWMutex
	words map[string]Verified
	links map[string][]Related

	// Err, when set, is returned by every lookup.
	Err error

	calls int
}

// NewStatic returns an empty Static source.
func NewStatic() *Static {
	return &Static{
		words: make(map[string]Verified),
		links: make(map[string][]Related),
	}
}

// AddWord registers a dictionary entry under its normalized form.
func (s *Static) AddWord(word string, freq float64) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[Normalize(word)] = Verified{Word: word, Frequency: freq}
	return s
}

// AddRelated appends a related word for (kind, source).
func (s *Static) AddRelated(kind RelationKind, source, word string, score float64) *Static {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := string(kind) + "|" + Normalize(source)
	s.links[key] = append(s.links[key], Related{Word: word, Score: score})
	return s
}

// Calls reports how many lookups have been served.
func (s *Static) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// VerifyWord implements Source.
func (s *Static) VerifyWord(ctx context.Context, word string) (Verified, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return Verified{}, false, s.Err
	}
	v, ok := s.words[Normalize(word)]
	return v, ok, nil
}

// QueryRelated implements Source.
func (s *Static) QueryRelated(ctx context.Context, word string, kind RelationKind, max int) ([]Related, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Err != nil {
		return nil, s.Err
	}
	res := s.links[string(kind)+"|"+Normalize(word)]
	if max > 0 && len(res) > max {
		res = res[:max]
	}
	return append([]Related(nil), res...), nil
}

// staticFile is the YAML layout read by LoadStatic:
//
//	words:
//	  ice: 0.4
//	links:
//	  - {kind: trigger, from: cold, to: ice, score: 100}
type staticFile struct {
	Words map[string]float64 `yaml:"words"`
	Links []struct {
		Kind  RelationKind `yaml:"kind"`
		From  string       `yaml:"from"`
		To    string       `yaml:"to"`
		Score float64      `yaml:"score"`
	} `yaml:"links"`
}

// LoadStatic builds a Static source from a YAML word list.
func LoadStatic(raw []byte) (*Static, error) {
	var f staticFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}
	s := NewStatic()
	for w, freq := range f.Words {
		s.AddWord(w, freq)
	}
	for i, l := range f.Links {
		if !l.Kind.Valid() {
			return nil, fmt.Errorf("link %d: unknown relation %q", i, l.Kind)
		}
		if l.From == "" || l.To == "" {
			return nil, fmt.Errorf("link %d: from and to are required", i)
		}
		s.AddRelated(l.Kind, l.From, l.To, l.Score)
	}
	return s, nil
}
