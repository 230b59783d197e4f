package market

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/texasgambler/bet-monitor/internal/textutil"
)

// Resolver mapeia o rótulo de mercado vindo da extração para a taxonomia
// canônica: sinônimo existente → classificação semântica via LLM → criação
// de um mercado novo.
type Resolver struct {
	repo  Repo
	cache *Cache     // opcional
	llm   Classifier // opcional
	log   *zap.Logger
}

func NewResolver(repo Repo, cache *Cache, llm Classifier, log *zap.Logger) *Resolver {
	return &Resolver{repo: repo, cache: cache, llm: llm, log: log}
}

// Resolve executa o algoritmo completo. Falhas na sub-chamada de classificação
// são engolidas como não-match: o resolvedor sempre completa caindo na criação
// de mercado: uma indisponibilidade transitória do LLM nunca deixa uma aposta
// sem resolução. Erros de persistência, esses sim, são propagados.
func (r *Resolver) Resolve(ctx context.Context, rawLabel string) (Resolution, error) {
	normalized := textutil.NormalizeKey(rawLabel)
	if normalized == "" {
		return Resolution{}, nil
	}

	// fast path: cache e depois sinônimo persistido, sem chamada de rede ao LLM
	if m, s, ok := r.cache.Get(ctx, normalized); ok {
		return Resolution{Market: m, Synonym: s, Normalized: normalized}, nil
	}

	m, s, err := r.repo.FindByNormalizedSynonym(ctx, normalized)
	if err != nil {
		return Resolution{}, err
	}
	if m != nil {
		r.cache.Set(ctx, normalized, m, s)
		return Resolution{Market: m, Synonym: s, Normalized: normalized}, nil
	}

	// rótulo inédito: tenta casar semanticamente com um mercado existente
	if matched, err := r.classifyAgainstExisting(ctx, normalized); err != nil {
		r.log.Warn("resolver: classificação de mercado falhou, seguindo para criação",
			zap.String("label", normalized), zap.Error(err))
	} else if matched != nil {
		synonym, err := r.repo.CreateSynonym(ctx, matched.ID, rawLabel, normalized)
		if err != nil {
			return Resolution{}, err
		}
		r.cache.Set(ctx, normalized, matched, synonym)
		r.log.Info("resolver: sinônimo novo anexado a mercado existente",
			zap.String("label", normalized), zap.String("market", matched.Name))
		return Resolution{Market: matched, Synonym: synonym, Normalized: normalized}, nil
	}

	// sem match: cria mercado + sinônimo a partir do rótulo bruto
	created, err := r.repo.CreateMarket(ctx, rawLabel, normalized, "")
	if err != nil {
		return Resolution{}, fmt.Errorf("resolver: criar mercado: %w", err)
	}
	synonym, err := r.repo.CreateSynonym(ctx, created.ID, rawLabel, normalized)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolver: criar sinônimo: %w", err)
	}
	r.cache.Set(ctx, normalized, created, synonym)
	r.log.Info("resolver: mercado novo criado", zap.String("market", created.Name))
	return Resolution{Market: created, Synonym: synonym, Normalized: normalized}, nil
}

// classifyAgainstExisting devolve o mercado casado ou nil para não-match.
func (r *Resolver) classifyAgainstExisting(ctx context.Context, normalized string) (*Market, error) {
	if r.llm == nil {
		return nil, nil
	}

	existing, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, nil
	}

	names := make([]string, len(existing))
	for i, m := range existing {
		names[i] = m.Name
	}

	match, name, err := r.llm.ClassifyMarket(ctx, normalized, names)
	if err != nil {
		return nil, err
	}
	if !match {
		return nil, nil
	}

	for i := range existing {
		if existing[i].Name == name {
			return &existing[i], nil
		}
	}
	return nil, nil
}
