package network

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/n30w/nimi/pkg/config"
	"codeberg.org/n30w/nimi/pkg/conlang"
	"codeberg.org/n30w/nimi/pkg/grammar"
	"codeberg.org/n30w/nimi/pkg/memory"
)

func newTestServer(t *testing.T, opts ...func(*serverConfig)) (*Server, *httptest.Server) {
	t.Helper()

	defaults := config.Default()
	defaults.Seed = 7

	s, err := NewServer(defaults, nil, opts...)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return s, ts
}

func decode[T any](t *testing.T, r io.Reader) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(r).Decode(&v))

	return v
}

func postGeneration(t *testing.T, ts *httptest.Server, body string) conlang.Generation {
	t.Helper()

	res, err := http.Post(ts.URL+"/api/generations?n=3", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusCreated, res.StatusCode)

	return decode[conlang.Generation](t, res.Body)
}

func TestCreateAndGetGeneration(t *testing.T) {
	_, ts := newTestServer(t)

	g := postGeneration(t, ts, `{"name":"tenpo","root_count":25}`)

	assert.Equal(t, "tenpo", g.Name)
	assert.Equal(t, uint64(7), g.Seed)
	assert.NotEmpty(t, g.Dictionary)

	res, err := http.Get(ts.URL + "/api/generations/" + g.ID.String())
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode[conlang.Generation](t, res.Body)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, g.Dictionary, got.Dictionary)
}

func TestCreateGeneration_DefaultsUntouched(t *testing.T) {
	s, ts := newTestServer(t)

	postGeneration(t, ts, `{"inventory":{"consonants":["x"],"vowels":["y"]}}`)

	assert.Equal(t, config.Default().Inventory, s.defaults.Inventory)
}

func TestCreateGeneration_Errors(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name   string
		query  string
		body   string
		status int
	}{
		{"bad json", "", `{`, http.StatusBadRequest},
		{"invalid config", "", `{"root_count":0}`, http.StatusUnprocessableEntity},
		{"bad count", "?n=x", ``, http.StatusBadRequest},
		{"count too large", "?n=1000", ``, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := http.Post(
				ts.URL+"/api/generations"+tt.query,
				"application/json",
				strings.NewReader(tt.body),
			)
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.status, res.StatusCode)

			e := decode[errorResponse](t, res.Body)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestListGenerations_NewestFirst(t *testing.T) {
	_, ts := newTestServer(t, WithHistory(2))

	postGeneration(t, ts, `{"name":"a"}`)
	postGeneration(t, ts, `{"name":"b"}`)
	postGeneration(t, ts, `{"name":"c"}`)

	res, err := http.Get(ts.URL + "/api/generations")
	require.NoError(t, err)
	defer res.Body.Close()

	list := decode[[]conlang.Summary](t, res.Body)
	require.Len(t, list, 2)
	assert.Equal(t, "c", list[0].Name)
	assert.Equal(t, "b", list[1].Name)
}

func TestGetGeneration_NotFound(t *testing.T) {
	_, ts := newTestServer(t)

	for _, path := range []string{
		"/api/generations/missing",
		"/api/generations/missing/sentences",
		"/api/generations/missing/export.csv",
	} {
		res, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		res.Body.Close()

		assert.Equal(t, http.StatusNotFound, res.StatusCode, path)
	}
}

func TestSentences(t *testing.T) {
	_, ts := newTestServer(t)

	g := postGeneration(t, ts, `{"root_count":40}`)

	res, err := http.Get(ts.URL + "/api/generations/" + g.ID.String() + "/sentences?n=4")
	require.NoError(t, err)
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnprocessableEntity {
		e := decode[errorResponse](t, res.Body)
		assert.Equal(t, grammar.InsufficientVocabulary, e.Error)
		return
	}

	require.Equal(t, http.StatusOK, res.StatusCode)

	got := decode[sentencesResponse](t, res.Body)
	assert.Equal(t, g.ID.String(), got.ID)
	assert.Len(t, got.Sentences, 4)
}

func TestSentences_InsufficientVocabulary(t *testing.T) {
	_, ts := newTestServer(t)

	// Without vowels nothing can be generated.
	g := postGeneration(t, ts, `{"inventory":{"consonants":["p"],"vowels":[]},"loanwords":false}`)
	require.Empty(t, g.Dictionary)

	res, err := http.Get(ts.URL + "/api/generations/" + g.ID.String() + "/sentences")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	assert.Equal(t, grammar.InsufficientVocabulary, decode[errorResponse](t, res.Body).Error)
}

func TestExportCSV(t *testing.T) {
	_, ts := newTestServer(t)

	g := postGeneration(t, ts, ``)

	res, err := http.Get(ts.URL + "/api/generations/" + g.ID.String() + "/export.csv")
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/csv")

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	assert.Equal(t, `"ipa","roman","pos","meaning","gender"`, lines[0])
	assert.Len(t, lines, len(g.Dictionary)+1)
}

func TestGetWord(t *testing.T) {
	_, ts := newTestServer(t)

	g := postGeneration(t, ts, ``)
	want := g.Dictionary[0]

	res, err := http.Get(ts.URL + "/api/generations/" + g.ID.String() + "/words/" + url.PathEscape(want.Roman))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, want, decode[memory.Entry](t, res.Body))

	res2, err := http.Get(ts.URL + "/api/generations/" + g.ID.String() + "/words/zzzzzz")
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusNotFound, res2.StatusCode)
}

func TestRomanize(t *testing.T) {
	_, ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/api/romanize?ipa=%CA%83a%C5%8B")
	require.NoError(t, err)
	defer res.Body.Close()

	got := decode[romanizeResponse](t, res.Body)
	assert.Equal(t, "ʃaŋ", got.IPA)
	assert.Equal(t, "shang", got.Roman)
}

func TestAssimilate(t *testing.T) {
	s, ts := newTestServer(t)

	s.defaults.Inventory.Consonants = []string{"p", "h", "n"}
	s.defaults.Inventory.Vowels = []string{"o", "e"}

	res, err := http.Get(ts.URL + "/api/assimilate?word=phone")
	require.NoError(t, err)
	defer res.Body.Close()

	got := decode[assimilateResponse](t, res.Body)
	assert.Equal(t, assimilateResponse{Word: "phone", IPA: "/phone/", Roman: "phone"}, got)

	res2, err := http.Get(ts.URL + "/api/assimilate")
	require.NoError(t, err)
	res2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res2.StatusCode)
}

func TestCORS(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/romanize?ipa=a", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
}

func readEvent(t *testing.T, r *bufio.Reader) conlang.Summary {
	t.Helper()

	for {
		line, err := r.ReadBytes('\n')
		require.NoError(t, err)

		if data, ok := bytes.CutPrefix(line, []byte("data: ")); ok {
			var s conlang.Summary
			require.NoError(t, json.Unmarshal(data, &s))
			return s
		}
	}
}

func TestEvents(t *testing.T) {
	_, ts := newTestServer(t)

	first := postGeneration(t, ts, `{"name":"before"}`)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/events", nil)
	require.NoError(t, err)

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, "text/event-stream", res.Header.Get("Content-Type"))

	r := bufio.NewReader(res.Body)

	replayed := readEvent(t, r)
	assert.Equal(t, first.ID, replayed.ID)

	second := postGeneration(t, ts, `{"name":"after"}`)

	live := readEvent(t, r)
	assert.Equal(t, second.ID, live.ID)
	assert.Equal(t, "after", live.Name)
	assert.Equal(t, len(second.Dictionary), live.Entries)
}
