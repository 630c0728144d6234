package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"astrocards/internal/domain"

	"github.com/valkey-io/valkey-go"
)

// ValkeyCache stores astro entries in a Valkey-compatible server. Expiry is
// left to the server: each key is written with EXAT set to the entry's
// ExpiresAt.
type ValkeyCache struct {
	client valkey.Client
	prefix string
	now    func() time.Time
}

type valkeyEntry struct {
	Record    domain.AstroRecord `json:"record"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "astro"
	}
	return &ValkeyCache{client: client, prefix: prefix, now: time.Now}
}

// ClientOption builds valkey client options from an address or a
// valkey:// URL.
func ClientOption(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// Dial creates a client and pings it.
func Dial(ctx context.Context, addr string) (valkey.Client, error) {
	opt, err := ClientOption(addr)
	if err != nil {
		return nil, fmt.Errorf("valkey options: %w", err)
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, fmt.Errorf("valkey client: %w", err)
	}
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey ping: %w", err)
	}
	return client, nil
}

// Get retrieves an entry. Returns the entry and true if found and not
// expired, otherwise nil and false. A missing key is not an error.
func (c *ValkeyCache) Get(ctx context.Context, location, date string) (*domain.CachedAstro, bool, error) {
	cmd := c.client.B().Get().Key(c.key(location, date)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var entry valkeyEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, false, err
	}
	cached := &domain.CachedAstro{Record: entry.Record, ExpiresAt: entry.ExpiresAt}
	if cached.Expired(c.now()) {
		return nil, false, nil
	}
	return cached, true, nil
}

// Set stores an entry as JSON with EXAT at its ExpiresAt. Already expired
// entries are not stored.
func (c *ValkeyCache) Set(ctx context.Context, location, date string, entry *domain.CachedAstro) error {
	if entry.Expired(c.now()) {
		return nil
	}
	payload, err := json.Marshal(valkeyEntry{Record: entry.Record, ExpiresAt: entry.ExpiresAt})
	if err != nil {
		return err
	}
	cmd := c.client.B().Set().Key(c.key(location, date)).Value(string(payload)).ExatTimestamp(entry.ExpiresAt.Unix()).Build()
	return c.client.Do(ctx, cmd).Error()
}

// Close releases the client.
func (c *ValkeyCache) Close() error {
	c.client.Close()
	return nil
}

func (c *ValkeyCache) key(location, date string) string {
	return c.prefix + ":" + NormalizedKey(location, date)
}
