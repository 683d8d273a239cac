package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/avashisht/paperbase/internal/config"
)

var once sync.Once
var pooledClient *http.Client

// GetClient returns the shared pooled HTTP client used for web-source
// fetching. Connection reuse matters when a batch job walks a list of URLs
// from the same host.
func GetClient() *http.Client {
	once.Do(func() {
		pooledClient = &http.Client{
			Timeout: config.WebFetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return pooledClient
}
