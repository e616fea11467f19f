package stores

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

// StorePrice is one retailer's best-effort price for a cigar. Price is nil
// when the retailer lookup failed or no price could be extracted.
type StorePrice struct {
	StoreName  string   `json:"store_name"`
	Price      *float64 `json:"price"`
	URL        string   `json:"url"`
	InStock    bool     `json:"in_stock"`
	ProductURL *string  `json:"product_url,omitempty"`
}

// Scraper looks up cigar prices on three retail sites. Scraping is fragile
// and may break when the sites change their markup; every lookup degrades
// to an unpriced placeholder entry instead of failing.
type Scraper struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string

	// Base URLs, overridable in tests
	CigarsIntlBase string
	NeptuneBase    string
	AtlanticBase   string
}

func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(rate.Limit(2), 4), // 2 req/sec with burst of 4
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",

		CigarsIntlBase: "https://www.cigarsinternational.com",
		NeptuneBase:    "https://www.neptunecigar.com",
		AtlanticBase:   "https://www.atlanticcigar.com",
	}
}

// FetchAll queries the three retailers concurrently and returns one entry
// per store. A failure in one lookup does not affect the others.
func (s *Scraper) FetchAll(ctx context.Context, name, brand string) []StorePrice {
	type result struct {
		idx   int
		price StorePrice
	}
	ch := make(chan result, 3)

	lookups := []func(context.Context, string, string) StorePrice{
		s.searchCigarsInternational,
		s.searchNeptuneCigar,
		s.searchAtlanticCigar,
	}

	for i, lookup := range lookups {
		go func(idx int, fn func(context.Context, string, string) StorePrice) {
			ch <- result{idx: idx, price: fn(ctx, name, brand)}
		}(i, lookup)
	}

	out := make([]StorePrice, 3)
	collected := 0
	for collected < 3 {
		select {
		case r := <-ch:
			out[r.idx] = r.price
			collected++
		case <-ctx.Done():
			// timeout; fill the stragglers with placeholders
			for i := range out {
				if out[i].StoreName == "" {
					out[i] = s.placeholder(i, name, brand)
				}
			}
			return out
		}
	}
	return out
}

func (s *Scraper) placeholder(idx int, name, brand string) StorePrice {
	switch idx {
	case 0:
		return StorePrice{StoreName: "Cigars International", URL: s.cigarsIntlSearchURL(name, brand)}
	case 1:
		return StorePrice{StoreName: "Neptune Cigar", URL: s.neptuneSearchURL(name, brand)}
	default:
		return StorePrice{StoreName: "Atlantic Cigar", URL: s.atlanticSearchURL(name, brand)}
	}
}

func (s *Scraper) cigarsIntlSearchURL(name, brand string) string {
	return s.CigarsIntlBase + "/search/?q=" + url.QueryEscape(brand+" "+name)
}

func (s *Scraper) neptuneSearchURL(name, brand string) string {
	return s.NeptuneBase + "/search?q=" + url.QueryEscape(brand+" "+name)
}

func (s *Scraper) atlanticSearchURL(name, brand string) string {
	return s.AtlanticBase + "/search.asp?keyword=" + url.QueryEscape(brand+" "+name)
}

// fetchDocument fetches a page and parses it, respecting the client-side
// rate limit.
func (s *Scraper) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func (s *Scraper) searchCigarsInternational(ctx context.Context, name, brand string) StorePrice {
	searchURL := s.cigarsIntlSearchURL(name, brand)
	entry := StorePrice{StoreName: "Cigars International", URL: searchURL}

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return entry
	}

	link := doc.Find(`a.product-item-link, .product-tile a, a[href*="/p/"]`).First()
	if href, ok := link.Attr("href"); ok {
		productURL := s.absoluteURL(s.CigarsIntlBase, href)
		entry.ProductURL = &productURL
		entry.URL = productURL
	}

	priceText := doc.Find(`.price, .product-price, [class*="price"]`).First().Text()
	entry.Price = ExtractPrice(priceText)
	entry.InStock = entry.ProductURL != nil && entry.Price != nil

	return entry
}

func (s *Scraper) searchNeptuneCigar(ctx context.Context, name, brand string) StorePrice {
	searchURL := s.neptuneSearchURL(name, brand)
	entry := StorePrice{StoreName: "Neptune Cigar", URL: searchURL}

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return entry
	}

	link := doc.Find(`a.product-link, .product-item a, a[href*="/products/"]`).First()
	if href, ok := link.Attr("href"); ok {
		productURL := s.absoluteURL(s.NeptuneBase, href)
		entry.ProductURL = &productURL
		entry.URL = productURL
	}

	priceText := doc.Find(`.price, .product-price`).First().Text()
	entry.Price = ExtractPrice(priceText)
	entry.InStock = entry.ProductURL != nil && entry.Price != nil

	return entry
}

func (s *Scraper) searchAtlanticCigar(ctx context.Context, name, brand string) StorePrice {
	searchURL := s.atlanticSearchURL(name, brand)
	entry := StorePrice{StoreName: "Atlantic Cigar", URL: searchURL}

	doc, err := s.fetchDocument(ctx, searchURL)
	if err != nil {
		return entry
	}

	link := doc.Find(`a.product-link, .productlist a, a[href*="product"]`).First()
	if href, ok := link.Attr("href"); ok {
		productURL := s.absoluteURL(s.AtlanticBase, href)
		entry.ProductURL = &productURL
		entry.URL = productURL
	}

	priceText := doc.Find(`.price, .productprice`).First().Text()
	entry.Price = ExtractPrice(priceText)
	entry.InStock = entry.ProductURL != nil && entry.Price != nil

	return entry
}

func (s *Scraper) absoluteURL(base, href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return base + href
	default:
		return base + "/" + href
	}
}

var pricePattern = regexp.MustCompile(`\$?(\d+\.\d{2})`)

// ExtractPrice pulls the first price-looking number out of a text blob,
// e.g. "$12.99" or "from 12.99 per stick".
func ExtractPrice(text string) *float64 {
	match := pricePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	return &v
}
