package attribution

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{name: "empty", query: "", want: ""},
		{name: "only question mark", query: "?", want: ""},
		{name: "no known keys", query: "?foo=bar&step=2", want: ""},
		{name: "single key", query: "?utm_source=fb", want: "?utm_source=fb"},
		{name: "without leading question mark", query: "utm_source=fb", want: "?utm_source=fb"},
		{name: "unknown keys dropped", query: "?foo=1&utm_medium=cpc&bar=2", want: "?utm_medium=cpc"},
		{name: "allow-list order wins", query: "?fbclid=123&utm_source=fb", want: "?utm_source=fb&fbclid=123"},
		{name: "raw values kept", query: "?utm_campaign=spring%20hiring&utm_content=a+b", want: "?utm_campaign=spring%20hiring&utm_content=a+b"},
		{name: "first occurrence wins", query: "?utm_source=first&utm_source=second", want: "?utm_source=first"},
		{name: "empty value treated as absent", query: "?utm_source=&gclid=abc", want: "?gclid=abc"},
		{name: "malformed pairs ignored", query: "?&&=x&utm_term&ad_id=9", want: "?ad_id=9"},
		{
			name:  "all keys",
			query: "?placement=feed&ad_id=7&adset_id=6&campaign_id=5&ttclid=t&gclid=g&fbclid=f&utm_term=jobs&utm_content=c&utm_campaign=camp&utm_medium=paid&utm_source=fb",
			want:  "?utm_source=fb&utm_medium=paid&utm_campaign=camp&utm_content=c&utm_term=jobs&fbclid=f&gclid=g&ttclid=t&campaign_id=5&adset_id=6&ad_id=7&placement=feed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.query))
		})
	}
}

func TestExtractOnlyReturnsAllowListedKeys(t *testing.T) {
	inputs := []string{
		"?a=1&utm_source=x&b=2&fbclid=y",
		"?UTM_SOURCE=upper&utm_source=lower",
		"?campaign=1&campaign_id=2&id=3",
	}
	for _, in := range inputs {
		out := Extract(in)
		if out == "" {
			continue
		}
		for _, part := range strings.Split(strings.TrimPrefix(out, "?"), "&") {
			key, value, _ := strings.Cut(part, "=")
			assert.True(t, IsKey(key), "unexpected key %q in %q", key, out)
			assert.Contains(t, in, key+"="+value)
		}
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/?utm_source=tiktok&ref=abc&ttclid=77", nil)
	assert.Equal(t, "?utm_source=tiktok&ttclid=77", FromRequest(r))
	assert.Equal(t, "", FromRequest(nil))
}

func TestLookup(t *testing.T) {
	v, ok := Lookup("?utm_campaign=spring%20hiring", "utm_campaign")
	assert.True(t, ok)
	assert.Equal(t, "spring hiring", v)

	_, ok = Lookup("?foo=bar", "foo")
	assert.False(t, ok)

	_, ok = Lookup("?utm_source=fb", "utm_medium")
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name        string
		destination string
		source      string
		want        string
	}{
		{name: "adds in allow-list order", destination: "/apply", source: "?utm_source=fb&fbclid=123", want: "/apply?utm_source=fb&fbclid=123"},
		{name: "keeps existing params", destination: "/apply?step=2", source: "?utm_source=fb", want: "/apply?step=2&utm_source=fb"},
		{name: "never overwrites", destination: "/apply?utm_source=already", source: "?utm_source=new", want: "/apply?utm_source=already"},
		{name: "fills only missing keys", destination: "/apply?utm_source=already", source: "?utm_source=new&utm_medium=cpc", want: "/apply?utm_source=already&utm_medium=cpc"},
		{name: "drops unknown source keys", destination: "/apply", source: "?foo=bar&gclid=g1", want: "/apply?gclid=g1"},
		{name: "nothing to add", destination: "/apply?step=3", source: "?foo=bar", want: "/apply?step=3"},
		{name: "empty source", destination: "/apply", source: "", want: "/apply"},
		{name: "keeps fragment", destination: "/apply?step=1#form", source: "utm_source=fb", want: "/apply?step=1&utm_source=fb#form"},
		{name: "absolute destination", destination: "https://jobs.example.com/apply", source: "?utm_source=fb", want: "https://jobs.example.com/apply?utm_source=fb"},
		{name: "root path", destination: "/", source: "?ad_id=5", want: "/?ad_id=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.destination, tt.source)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "attribution.invalid")
		})
	}
}

func TestMergeUnparseableDestination(t *testing.T) {
	assert.Equal(t, "/a%zz", Merge("/a%zz", "?utm_source=fb"))
}

func TestMergeIsIdempotent(t *testing.T) {
	destinations := []string{"/apply", "/apply?step=2", "/apply?utm_source=already#top", "/fast-track", "https://jobs.example.com/apply?x=1"}
	sources := []string{"", "?utm_source=fb", "?utm_source=new&fbclid=123&placement=story", "?foo=bar"}

	for _, d := range destinations {
		for _, s := range sources {
			once := Merge(d, s)
			assert.Equal(t, once, Merge(once, s), "destination %q source %q", d, s)
		}
	}
}
