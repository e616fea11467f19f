package stores

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPrice(t *testing.T) {
	cases := []struct {
		text string
		want *float64
	}{
		{"$12.99", f(12.99)},
		{"from 8.50 per stick", f(8.50)},
		{"Price: $125.00 / box", f(125.00)},
		{"out of stock", nil},
		{"", nil},
		{"$12", nil}, // whole-dollar strings without cents are ambiguous
	}

	for _, tc := range cases {
		got := ExtractPrice(tc.text)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.text)
		} else {
			require.NotNil(t, got, "input %q", tc.text)
			assert.InDelta(t, *tc.want, *got, 1e-9)
		}
	}
}

func f(v float64) *float64 { return &v }

const productPage = `
<html><body>
  <a class="product-item-link" href="/p/padron-1964">Padron 1964</a>
  <span class="price">$18.75</span>
</body></html>`

func TestFetchAll_ParsesPriceAndProductLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(productPage))
	}))
	defer srv.Close()

	s := NewScraper(2 * time.Second)
	s.CigarsIntlBase = srv.URL
	s.NeptuneBase = srv.URL
	s.AtlanticBase = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prices := s.FetchAll(ctx, "1964 Anniversary", "Padron")
	require.Len(t, prices, 3)

	first := prices[0]
	assert.Equal(t, "Cigars International", first.StoreName)
	require.NotNil(t, first.Price)
	assert.InDelta(t, 18.75, *first.Price, 1e-9)
	require.NotNil(t, first.ProductURL)
	assert.Equal(t, srv.URL+"/p/padron-1964", *first.ProductURL)
	assert.True(t, first.InStock)
}

func TestFetchAll_FailedRetailersDegradeToPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewScraper(2 * time.Second)
	s.CigarsIntlBase = srv.URL
	s.NeptuneBase = srv.URL
	s.AtlanticBase = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	prices := s.FetchAll(ctx, "No. 2", "Montecristo")
	require.Len(t, prices, 3)

	names := []string{prices[0].StoreName, prices[1].StoreName, prices[2].StoreName}
	assert.Equal(t, []string{"Cigars International", "Neptune Cigar", "Atlantic Cigar"}, names)

	for _, p := range prices {
		assert.Nil(t, p.Price)
		assert.False(t, p.InStock)
		assert.NotEmpty(t, p.URL, "failed lookups keep the search link")
	}
}

func TestFetchAll_TimeoutFillsPlaceholders(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(3 * time.Second)
	}))
	defer slow.Close()

	s := NewScraper(5 * time.Second)
	s.CigarsIntlBase = slow.URL
	s.NeptuneBase = slow.URL
	s.AtlanticBase = slow.URL

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	prices := s.FetchAll(ctx, "Opus X", "Arturo Fuente")
	require.Len(t, prices, 3)
	for _, p := range prices {
		assert.NotEmpty(t, p.StoreName)
		assert.Nil(t, p.Price)
	}
}

func TestSearchURLsEscapeQuery(t *testing.T) {
	s := NewScraper(time.Second)
	s.CigarsIntlBase = "https://example.com"

	url := s.cigarsIntlSearchURL("Serie V Melanio", "Oliva")
	assert.Equal(t, "https://example.com/search/?q=Oliva+Serie+V+Melanio", url)
}
