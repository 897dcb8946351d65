package imaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"time"

	"precojusto-backend/utils"
)

var privateRanges = []*net.IPNet{
	parseCIDR("10.0.0.0/8"),
	parseCIDR("172.16.0.0/12"),
	parseCIDR("192.168.0.0/16"),
	parseCIDR("127.0.0.0/8"),
	parseCIDR("169.254.0.0/16"),
	parseCIDR("0.0.0.0/8"),
	parseCIDR("::1/128"),
	parseCIDR("fc00::/7"),
	parseCIDR("fe80::/10"),
}

func parseCIDR(cidr string) *net.IPNet {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("invalid CIDR: %s", cidr))
	}
	return network
}

// isPrivateIP checks whether an IP address is a private/reserved address.
func isPrivateIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// maxRedirects bounds how many hops a photo download may follow.
const maxRedirects = 5

var errUnsafeURL = errors.New("unsafe URL")

// Fetcher downloads remote product photos, refusing URLs that resolve to
// private addresses. The check runs on every redirect hop and again on the
// address actually dialed.
type Fetcher struct {
	Client   *http.Client
	LookupIP func(host string) ([]net.IP, error)
	// Blocked reports addresses the fetcher must never connect to.
	Blocked func(ip net.IP) bool
}

func NewFetcher() *Fetcher {
	f := &Fetcher{
		LookupIP: net.LookupIP,
		Blocked:  isPrivateIP,
	}
	dialer := &net.Dialer{
		Timeout: 10 * time.Second,
		Control: f.checkDial,
	}
	f.Client = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 20 * time.Second,
		},
		CheckRedirect: f.checkRedirect,
	}
	return f
}

// checkDial runs after name resolution, so it sees the address the
// connection really goes to.
func (f *Fetcher) checkDial(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %v", errUnsafeURL, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return fmt.Errorf("%w: unresolved address %s", errUnsafeURL, host)
	}
	if f.Blocked != nil && f.Blocked(ip) {
		return fmt.Errorf("%w: connection to private IP address %s is not allowed", errUnsafeURL, ip)
	}
	return nil
}

func (f *Fetcher) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("%w: stopped after %d redirects", errUnsafeURL, maxRedirects)
	}
	if err := f.validateExternalURL(req.URL.String()); err != nil {
		return fmt.Errorf("%w: redirect rejected: %v", errUnsafeURL, err)
	}
	return nil
}

// validateExternalURL validates that a URL is safe to fetch.
func (f *Fetcher) validateExternalURL(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %v", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL scheme '%s' is not allowed; only http and https are permitted", parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no hostname")
	}
	if strings.EqualFold(host, "localhost") {
		return fmt.Errorf("requests to localhost are not allowed")
	}

	ips, err := f.LookupIP(host)
	if err != nil {
		return fmt.Errorf("failed to resolve hostname '%s': %v", host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("URL resolves to private IP address %s, which is not allowed", ip.String())
		}
	}
	return nil
}

// Fetch downloads rawURL and sniffs the body like any other upload.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (Image, error) {
	if err := f.validateExternalURL(rawURL); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		if errors.Is(err, errUnsafeURL) {
			return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		return Image{}, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("%w: HTTP %d", ErrFetchFailed, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, utils.MaxUploadSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("%w: failed to read image body: %v", ErrFetchFailed, err)
	}
	return Sniff(data)
}
