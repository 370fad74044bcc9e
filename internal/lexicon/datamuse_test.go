package lexicon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatamuseServer(t *testing.T, h http.HandlerFunc) *Datamuse {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewDatamuse(srv.URL, time.Second)
}

func TestDatamuseVerifyWord(t *testing.T) {
	d := newDatamuseServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/words", r.URL.Path)
		assert.Equal(t, "f", r.URL.Query().Get("md"))
		switch r.URL.Query().Get("sp") {
		case "paris":
			_, _ = w.Write([]byte(`[{"word":"Paris","score":100,"tags":["f:50.5"]}]`))
		case "qwzx":
			_, _ = w.Write([]byte(`[]`))
		case "ocean":
			_, _ = w.Write([]byte(`[{"word":"ocean","score":100,"tags":["f:420"]}]`))
		default:
			_, _ = w.Write([]byte(`[{"word":"other","score":1,"tags":["f:bad"]}]`))
		}
	})
	ctx := context.Background()

	v, ok, err := d.VerifyWord(ctx, "paris")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Paris", v.Word)
	assert.InDelta(t, 0.505, v.Frequency, 1e-9)

	v, ok, err = d.VerifyWord(ctx, "ocean")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1.0, v.Frequency)

	_, ok, err = d.VerifyWord(ctx, "qwzx")
	require.NoError(t, err)
	assert.False(t, ok)

	// A fuzzy hit on a different word does not verify.
	_, ok, err = d.VerifyWord(ctx, "othr")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDatamuseQueryRelated(t *testing.T) {
	d := newDatamuseServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cold", r.URL.Query().Get("rel_trg"))
		assert.Equal(t, "50", r.URL.Query().Get("max"))
		_, _ = w.Write([]byte(`[{"word":"ice","score":900},{"word":"winter","score":450}]`))
	})

	res, err := d.QueryRelated(context.Background(), "cold", RelTrigger, 50)
	require.NoError(t, err)
	assert.Equal(t, []Related{{Word: "ice", Score: 900}, {Word: "winter", Score: 450}}, res)
}

func TestDatamuseErrors(t *testing.T) {
	d := newDatamuseServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	ctx := context.Background()

	_, _, err := d.VerifyWord(ctx, "cat")
	assert.Error(t, err)

	_, err = d.QueryRelated(ctx, "cat", RelSynonym, 10)
	assert.Error(t, err)

	_, err = d.QueryRelated(ctx, "cat", RelationKind("bogus"), 10)
	assert.Error(t, err)
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want float64
	}{
		{"missing", nil, 0},
		{"other tags only", []string{"n", "syn"}, 0},
		{"common", []string{"n", "f:25"}, 0.25},
		{"capped", []string{"f:1000"}, 1},
		{"malformed", []string{"f:abc"}, 0},
		{"negative", []string{"f:-3"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, parseFrequency(tt.tags), 1e-9)
		})
	}
}

func TestRelationsOrderAndLabels(t *testing.T) {
	require.Len(t, Relations, 7)
	assert.Equal(t, RelSynonym, Relations[0])
	assert.Equal(t, RelTrigger, Relations[1])
	assert.Equal(t, RelSoundsLike, Relations[len(Relations)-1])
	for _, k := range Relations {
		assert.NotEqual(t, string(k), k.Label(), "kind %s needs a label", k)
		_, ok := relationParams[k]
		assert.True(t, ok, "kind %s needs a datamuse param", k)
	}
}
