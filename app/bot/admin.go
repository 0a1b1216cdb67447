package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobnest/jobnest/pkg/botx"
)

func (c *Ctrl) users(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	users, err := c.Store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	sb := &strings.Builder{}
	_, _ = sb.WriteString("Users:\n")
	for _, u := range users {
		_, _ = fmt.Fprintf(sb, "id: %s, username: %s, role: %s, location: %s\n",
			u.ID, escapeMarkdown(u.Username), u.Role, escapeMarkdown(u.Location))
	}

	return reply(req, sb.String()), nil
}

func (c *Ctrl) cacheStats(_ context.Context, req botx.Request) ([]botx.Response, error) {
	if c.CacheStat == nil {
		return reply(req, "generation cache is disabled"), nil
	}

	stats := c.CacheStat()
	return reply(req, fmt.Sprintf("hits: %d, misses: %d, added: %d, evicted: %d",
		stats.Hits, stats.Misses, stats.Added, stats.Evicted)), nil
}
