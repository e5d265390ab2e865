// HTTP transport for seeding posters from live pages. Uses a
// browser-like TLS fingerprint (uTLS) with ALPN-based routing between
// HTTP/1.1 and HTTP/2 so sites with bot detection still serve us, and
// falls back to standard TLS when tunneling through a proxy.
package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const defaultUA = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"

// maxResponseBytes bounds any single HTTP response body. Responses
// over the limit are rejected. 0 means unlimited.
var maxResponseBytes int64 = 128 * 1024 * 1024

// fetchConfig carries the transport options from the CLI.
type fetchConfig struct {
	timeout   time.Duration
	userAgent string
	proxy     string
}

// readLimited reads up to limit bytes from r, erroring when the body
// exceeds it. limit <= 0 reads without bound.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds maximum allowed size (%s)", humanSize(limit))
	}
	return data, nil
}

// newFetchClient builds the HTTP client for a target URL. Proxy mode
// uses standard TLS (uTLS cannot negotiate CONNECT tunnels); plain
// http skips TLS entirely; https goes through the uTLS transport.
func newFetchClient(target *url.URL, cfg fetchConfig) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.timeout}
	if cfg.proxy != "" {
		transport := &http.Transport{DialContext: safeDialContext(dialer)}
		if proxyURL, err := url.Parse(cfg.proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		return &http.Client{Timeout: cfg.timeout, Transport: transport}
	}
	if target != nil && target.Scheme == "https" {
		return &http.Client{
			Timeout: cfg.timeout,
			Transport: &fingerprintTransport{
				dialer:  dialer,
				h1:      &http.Transport{DialContext: safeDialContext(dialer)},
				h2:      &http2.Transport{},
				timeout: cfg.timeout,
			},
		}
	}
	return &http.Client{
		Timeout:   cfg.timeout,
		Transport: &http.Transport{DialContext: safeDialContext(dialer)},
	}
}

// utlsConn adapts a utls.UConn to the ConnectionState interface that
// net/http2 expects from a net.Conn.
type utlsConn struct {
	*utls.UConn
}

func (c *utlsConn) ConnectionState() tls.ConnectionState {
	cs := c.UConn.ConnectionState()
	return tls.ConnectionState{
		Version:                    cs.Version,
		HandshakeComplete:          cs.HandshakeComplete,
		CipherSuite:                cs.CipherSuite,
		NegotiatedProtocol:         cs.NegotiatedProtocol,
		NegotiatedProtocolIsMutual: cs.NegotiatedProtocolIsMutual,
		ServerName:                 cs.ServerName,
		PeerCertificates:           cs.PeerCertificates,
		VerifiedChains:             cs.VerifiedChains,
		OCSPResponse:               cs.OCSPResponse,
		TLSUnique:                  cs.TLSUnique,
	}
}

// fingerprintTransport dials with uTLS and routes the request to the
// HTTP/1.1 or HTTP/2 transport depending on the negotiated ALPN.
type fingerprintTransport struct {
	dialer  *net.Dialer
	h1      *http.Transport
	h2      *http2.Transport
	timeout time.Duration
}

func (ft *fingerprintTransport) dialUTLS(ctx context.Context, network, addr string) (net.Conn, string, error) {
	conn, err := safeDialContext(ft.dialer)(ctx, network, addr)
	if err != nil {
		return nil, "", err
	}
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}
	tlsConn := utls.UClient(conn, &utls.Config{ServerName: host}, utls.HelloFirefox_120)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, "", err
	}
	return &utlsConn{tlsConn}, tlsConn.ConnectionState().NegotiatedProtocol, nil
}

func (ft *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return ft.h1.RoundTrip(req)
	}

	addr := req.URL.Host
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr += ":443"
	}

	conn, alpn, err := ft.dialUTLS(req.Context(), "tcp", addr)
	if err != nil {
		return nil, err
	}

	if alpn == "h2" {
		h2conn, err := ft.h2.NewClientConn(conn)
		if err != nil {
			conn.Close()
			return nil, err
		}
		return h2conn.RoundTrip(req)
	}

	// HTTP/1.1: hand the established TLS conn to a one-shot transport.
	oneShot := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return conn, nil
		},
	}
	return oneShot.RoundTrip(req)
}

// fetchHTML downloads a page and returns the body bytes and parsed URL.
func fetchHTML(rawURL string, cfg fetchConfig) ([]byte, *url.URL, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("User-Agent", cfg.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")

	resp, err := newFetchClient(parsed, cfg).Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := readLimited(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, nil, fmt.Errorf("reading response: %w", err)
	}

	pprintf("fetched %s (%s)\n", shortURL(rawURL), humanSize(int64(len(body))))
	return body, parsed, nil
}

// fetchImage downloads an image URL and returns its bytes and MIME type.
func fetchImage(imgURL string, cfg fetchConfig) ([]byte, string, error) {
	parsed, err := url.Parse(imgURL)
	if err != nil {
		return nil, "", err
	}
	resp, err := newFetchClient(parsed, cfg).Get(imgURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := readLimited(resp.Body, maxResponseBytes)
	if err != nil {
		return nil, "", err
	}
	return data, sniffMIME(resp.Header.Get("Content-Type"), data), nil
}
