package market

import (
	"context"
	"fmt"
)

type seedEntry struct {
	name     string
	key      string
	category string
}

// Taxonomia inicial de mercados de esports. Cada mercado ganha um sinônimo
// de si mesmo para o fast path do resolvedor funcionar desde a primeira mensagem.
var seedMarkets = []seedEntry{
	{"Moneyline", "moneyline", "result"},
	{"Match Winner", "match_winner", "result"},
	{"Double Chance", "double_chance", "result"},
	{"Map Handicap", "map_handicap", "handicap"},
	{"Correct Map Score", "correct_map_score", "result"},
	{"Correct Series Score", "correct_series_score", "result"},

	{"Total Kills Over", "total_kills_over", "totals"},
	{"Total Kills Under", "total_kills_under", "totals"},
	{"Total Time Over", "total_time_over", "totals"},
	{"Total Time Under", "total_time_under", "totals"},
	{"Total Maps Over", "total_maps_over", "totals"},
	{"Total Maps Under", "total_maps_under", "totals"},

	{"Kill Handicap", "kill_handicap", "handicap"},
	{"Time Handicap", "time_handicap", "handicap"},
	{"Gold Handicap", "gold_handicap", "handicap"},
	{"Tower Handicap", "tower_handicap", "handicap"},

	{"First Blood", "first_blood", "first"},
	{"First Tower", "first_tower", "first"},
	{"First Epic Objective", "first_epic_objective", "first"},

	{"Race to Kills", "race_to_kills", "race"},
	{"Race to Towers", "race_to_towers", "race"},
	{"Race to Epic Objectives", "race_to_epic_objectives", "race"},

	{"Most Kills", "most_kills", "team_props"},
	{"Most Towers", "most_towers", "team_props"},
	{"Most Epic Objectives", "most_epic_objectives", "team_props"},

	{"Player Kills Over", "player_kills_over", "player_props"},
	{"Player Kills Under", "player_kills_under", "player_props"},
	{"Player Assists Over", "player_assists_over", "player_props"},
	{"Player Assists Under", "player_assists_under", "player_props"},
	{"Player Deaths Over", "player_deaths_over", "player_props"},
	{"Player Deaths Under", "player_deaths_under", "player_props"},
	{"Player KDA Over", "player_kda_over", "player_props"},
	{"Player KDA Under", "player_kda_under", "player_props"},
	{"Top Kills", "top_kills", "player_props"},

	{"Total Dragons Over", "total_dragons_over", "objectives"},
	{"Total Dragons Under", "total_dragons_under", "objectives"},
	{"Total Barons Over", "total_barons_over", "objectives"},
	{"Total Barons Under", "total_barons_under", "objectives"},
	{"Total Heralds Over", "total_heralds_over", "objectives"},
	{"Total Heralds Under", "total_heralds_under", "objectives"},
	{"First Dragon", "first_dragon", "objectives"},
	{"First Baron", "first_baron", "objectives"},

	{"Total Roshan Over", "total_roshan_over", "objectives"},
	{"Total Roshan Under", "total_roshan_under", "objectives"},
	{"First Roshan", "first_roshan", "objectives"},
	{"Total Barracks Over", "total_barracks_over", "objectives"},
	{"Total Barracks Under", "total_barracks_under", "objectives"},
}

// Seed popula a taxonomia inicial. Idempotente: reaproveita mercados e
// sinônimos já existentes.
func Seed(ctx context.Context, repo Repo) error {
	for _, entry := range seedMarkets {
		m, err := repo.CreateMarket(ctx, entry.name, entry.key, entry.category)
		if err != nil {
			return fmt.Errorf("seed market %q: %w", entry.name, err)
		}
		if _, err := repo.CreateSynonym(ctx, m.ID, entry.name, entry.key); err != nil {
			return fmt.Errorf("seed synonym %q: %w", entry.name, err)
		}
	}
	return nil
}
