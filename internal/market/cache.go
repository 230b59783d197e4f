package market

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/texasgambler/bet-monitor/internal/textutil"
)

// Cache guarda resoluções de sinônimo no Redis para poupar o round-trip ao
// Postgres no fast path. Opcional: com Client nil todas as operações viram no-op.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(c *redis.Client, ttl time.Duration) *Cache {
	return &Cache{Client: c, TTL: ttl}
}

type cachedResolution struct {
	MarketID   int64  `json:"market_id"`
	MarketName string `json:"market_name"`
	SynonymID  int64  `json:"synonym_id"`
}

func key(normalized string) string { return "market:synonym:" + normalized }

// Get devolve (nil, nil, false) em miss, erro de rede ou cache desabilitado.
// Erro de cache nunca é propagado: o resolvedor segue para o banco.
func (c *Cache) Get(ctx context.Context, normalized string) (*Market, *Synonym, bool) {
	if c == nil || c.Client == nil {
		return nil, nil, false
	}
	raw, err := c.Client.Get(ctx, key(normalized)).Result()
	if err != nil {
		return nil, nil, false
	}
	var cached cachedResolution
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		return nil, nil, false
	}
	return &Market{ID: cached.MarketID, Name: cached.MarketName, NormalizedName: textutil.NormalizeKey(cached.MarketName)},
		&Synonym{ID: cached.SynonymID, MarketID: cached.MarketID, NormalizedValue: normalized},
		true
}

func (c *Cache) Set(ctx context.Context, normalized string, m *Market, s *Synonym) {
	if c == nil || c.Client == nil || m == nil || s == nil {
		return
	}
	b, err := json.Marshal(cachedResolution{MarketID: m.ID, MarketName: m.Name, SynonymID: s.ID})
	if err != nil {
		return
	}
	_ = c.Client.Set(ctx, key(normalized), b, c.TTL).Err()
}
