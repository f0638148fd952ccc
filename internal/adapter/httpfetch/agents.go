package httpfetch

import (
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 13_6) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.3 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36",
}

// Agents handles the rotation of proxies and user agents.
type Agents struct {
	mu         sync.Mutex
	rnd        *rand.Rand
	userAgents []string
	proxies    []string
	proxyIndex int
}

// NewAgents uses a fixed user agent when userAgent is set, otherwise a small
// built-in pool. proxies is a comma separated list and may be empty.
func NewAgents(userAgent, proxies string) *Agents {
	a := &Agents{
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		userAgents: defaultUserAgents,
	}
	if ua := strings.TrimSpace(userAgent); ua != "" {
		a.userAgents = []string{ua}
	}
	for _, p := range strings.Split(proxies, ",") {
		if p = strings.TrimSpace(p); p != "" {
			a.proxies = append(a.proxies, p)
		}
	}
	return a
}

// UserAgent returns a random user agent string.
func (a *Agents) UserAgent() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.userAgents[a.rnd.Intn(len(a.userAgents))]
}

// Proxy returns a proxy URL from the list, rotating sequentially.
func (a *Agents) Proxy() string {
	if len(a.proxies) == 0 {
		return ""
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	p := a.proxies[a.proxyIndex]
	a.proxyIndex = (a.proxyIndex + 1) % len(a.proxies)
	return p
}

func (a *Agents) HasProxies() bool {
	return len(a.proxies) > 0
}

// ProxyFunc plugs the rotation into http.Transport.Proxy.
func (a *Agents) ProxyFunc(*http.Request) (*url.URL, error) {
	p := a.Proxy()
	if p == "" {
		return nil, nil
	}
	return url.Parse(p)
}
