package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/mdns"

	"github.com/izzyreal/raincast/internal/protocol"
)

var ErrNoServer = errors.New("no raincast server found on the local network")

// Discover browses mDNS for a raincast server and returns its base URL.
func Discover(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("mdns query: %w", err)
	}
	if timeout <= 0 {
		return "", fmt.Errorf("mdns query: %w", context.DeadlineExceeded)
	}
	entries := make(chan *mdns.ServiceEntry, 16)
	params := mdns.DefaultParams(protocol.MDNSService)
	params.Entries = entries
	params.Timeout = timeout
	params.DisableIPv6 = true

	errCh := make(chan error, 1)
	go func() {
		errCh <- mdns.Query(params)
		close(entries)
	}()

	var found string
	for entry := range entries {
		if found == "" {
			found = entryURL(entry)
		}
	}
	if err := <-errCh; err != nil && found == "" {
		return "", fmt.Errorf("mdns query: %w", err)
	}
	if found == "" {
		return "", ErrNoServer
	}
	return found, nil
}

// entryURL returns the base URL for a raincast entry, or "" for entries
// from other services.
func entryURL(entry *mdns.ServiceEntry) string {
	if entry == nil || entry.Port <= 0 {
		return ""
	}
	if !hasInfoField(entry.InfoFields, "name=raincast") {
		return ""
	}
	var ip net.IP
	switch {
	case entry.AddrV4 != nil:
		ip = entry.AddrV4
	case entry.AddrV6 != nil:
		ip = entry.AddrV6
	default:
		return ""
	}
	return "http://" + net.JoinHostPort(ip.String(), strconv.Itoa(entry.Port))
}

func hasInfoField(fields []string, want string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == want {
			return true
		}
	}
	return false
}
