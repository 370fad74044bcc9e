package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordchain/internal/game"
)

const testLexicon = `
words:
  ice: 0.4
  Paris: 0.3
links:
  - {kind: trigger, from: cold, to: ice, score: 100}
  - {kind: trigger, from: france, to: paris, score: 100}
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

func writeLexicon(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(p, []byte(testLexicon), 0o644))
	return p
}

func TestCheckAccepts(t *testing.T) {
	out, err := run(t, "check", "--lexicon", writeLexicon(t), "france", "PARIS")
	require.NoError(t, err)

	var res game.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.True(t, res.OK())
	assert.Equal(t, "Paris", res.Accepted.Word)
	assert.Equal(t, "Association", res.Accepted.Label)
}

func TestCheckRejectsUsedWord(t *testing.T) {
	out, err := run(t, "check", "--lexicon", writeLexicon(t), "cold", "ice", "start", "ice")
	require.NoError(t, err)

	var res game.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.False(t, res.OK())
	assert.Equal(t, game.ReasonAlreadyUsed, res.Rejected.Reason)
}

func TestCheckNeedsTwoWords(t *testing.T) {
	_, err := run(t, "check", "--lexicon", writeLexicon(t), "cold")
	assert.Error(t, err)
}

func TestScore(t *testing.T) {
	out, err := run(t, "score", "5", "--hubs", "1", "--stars", "6")
	require.NoError(t, err)

	var sc game.Score
	require.NoError(t, json.Unmarshal([]byte(out), &sc))
	assert.Equal(t, 6, sc.EffectiveSteps)
	assert.Equal(t, 3.0, sc.Final)

	_, err = run(t, "score", "five", "--hubs", "0", "--stars", "0")
	assert.Error(t, err)
	_, err = run(t, "score", "3", "--hubs=-1", "--stars=0")
	assert.Error(t, err)
}

func TestMissingLexiconFile(t *testing.T) {
	_, err := run(t, "check", "--lexicon", filepath.Join(t.TempDir(), "nope.yaml"), "cold", "ice")
	assert.ErrorContains(t, err, "read lexicon")
}
