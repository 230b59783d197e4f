// Package market mantém a taxonomia canônica de mercados de aposta e o
// resolvedor que mapeia rótulos livres para ela via sinônimos.
package market

import "time"

// Market é uma entrada canônica da taxonomia. Criado de forma preguiçosa na
// primeira vez que um rótulo novo aparece; nunca alterado pelo pipeline.
type Market struct {
	ID             int64
	Name           string
	NormalizedName string
	Category       string // vazio quando não categorizado
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Synonym é uma grafia alternativa apontando para um Market. O valor
// normalizado é a chave única de lookup.
type Synonym struct {
	ID              int64
	MarketID        int64
	Value           string
	NormalizedValue string
	CreatedAt       time.Time
}

// Resolution é o resultado de resolver um rótulo livre. Os três campos são
// nulos juntos sse o rótulo normaliza para vazio.
type Resolution struct {
	Market     *Market
	Synonym    *Synonym
	Normalized string
}
