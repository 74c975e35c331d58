package tracksdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/anisan-cli/avbridge/filesystem"
	"github.com/anisan-cli/avbridge/log"
	"github.com/anisan-cli/avbridge/network"
	"github.com/metafates/gache"
)

// HTTP queries a metadata service with GET <endpoint>?url=<stream url> and
// caches successful answers on disk, keyed by stream URL.
type HTTP struct {
	Endpoint string
	Client   *http.Client

	cache *gache.Cache[map[string]Data]
}

// NewHTTP returns a fetcher backed by a cache file at path with the given lifetime.
func NewHTTP(endpoint, path string, lifetime time.Duration) *HTTP {
	return &HTTP{
		Endpoint: endpoint,
		Client:   network.Client,
		cache: gache.New[map[string]Data](&gache.Options{
			Path:       path,
			Lifetime:   lifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (h *HTTP) Fetch(ctx context.Context, streamURL string) (Data, error) {
	if data, ok := h.cached(streamURL); ok {
		return data, nil
	}

	u, err := url.Parse(h.Endpoint)
	if err != nil {
		return Data{}, fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("url", streamURL)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Data{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := h.Client.Do(req)
	if err != nil {
		return Data{}, fmt.Errorf("tracks request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Data{}, fmt.Errorf("tracks request: status %d", resp.StatusCode)
	}

	var data Data
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return Data{}, fmt.Errorf("parse tracks response: %w", err)
	}

	if err := h.store(streamURL, data); err != nil {
		log.Warnf("cache tracks data for %s: %v", streamURL, err)
	}

	return data, nil
}

func (h *HTTP) cached(streamURL string) (Data, bool) {
	all, expired, err := h.cache.Get()
	if err != nil || expired || all == nil {
		return Data{}, false
	}

	data, ok := all[streamURL]
	return data, ok
}

func (h *HTTP) store(streamURL string, data Data) error {
	all, expired, err := h.cache.Get()
	if err != nil {
		return err
	}

	if expired || all == nil {
		all = make(map[string]Data)
	}
	all[streamURL] = data
	return h.cache.Set(all)
}
