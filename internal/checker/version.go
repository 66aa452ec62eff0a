package checker

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/khanhnv2901/cmsaudit/internal/httpclient"
)

// DefaultWordPressVersionFeed is the public WordPress core version-check API.
const DefaultWordPressVersionFeed = "https://api.wordpress.org/core/version-check/1.7/"

// VersionSource reports the latest stable release of a CMS. ok is false when
// the release could not be determined.
type VersionSource interface {
	Latest(ctx context.Context) (version string, ok bool)
}

// WordPressFeed reads the latest version from the WordPress version-check feed.
type WordPressFeed struct {
	URL    string
	Prober httpclient.Prober
}

// NewWordPressFeed returns a feed reader; an empty url selects the public feed.
func NewWordPressFeed(p httpclient.Prober, url string) *WordPressFeed {
	if url == "" {
		url = DefaultWordPressVersionFeed
	}
	return &WordPressFeed{URL: url, Prober: p}
}

type wordPressOffers struct {
	Offers []struct {
		Current string `json:"current"`
	} `json:"offers"`
}

// Latest returns offers[0].current. Any failure is reported as ok == false.
func (f *WordPressFeed) Latest(ctx context.Context) (string, bool) {
	resp, ok := f.Prober.Get(ctx, f.URL)
	if !ok || resp.StatusCode != http.StatusOK {
		return "", false
	}

	var feed wordPressOffers
	if err := json.Unmarshal(resp.Body, &feed); err != nil {
		return "", false
	}
	if len(feed.Offers) == 0 || feed.Offers[0].Current == "" {
		return "", false
	}
	return feed.Offers[0].Current, true
}
