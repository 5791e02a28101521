package skins

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/skinsgame/internal/models"
)

// PlayerSummary is a player's final position in the skins game.
type PlayerSummary struct {
	SkinsWon   int
	TotalValue decimal.Decimal // SkinsWon x stake, display only
	MoneyIn    decimal.Decimal // received from other players, >= 0
	MoneyOut   decimal.Decimal // paid to other players, <= 0
	Total      decimal.Decimal // MoneyIn + MoneyOut
}

type entry struct {
	skinsWon int
	moneyIn  decimal.Decimal
	moneyOut decimal.Decimal
}

// ledger tracks skins and money per player. Every roster player has an entry
// from the start; order is the roster order used for deterministic tie-breaks.
type ledger struct {
	order   []string
	entries map[string]*entry
}

func newLedger(players []models.Player) ledger {
	l := ledger{
		order:   make([]string, 0, len(players)),
		entries: make(map[string]*entry, len(players)),
	}
	for _, p := range players {
		if _, dup := l.entries[p.ID]; dup {
			continue
		}
		l.order = append(l.order, p.ID)
		l.entries[p.ID] = &entry{}
	}
	return l
}

func (l ledger) award(playerID string, skins int) {
	l.entries[playerID].skinsWon += skins
}

// transfer moves amount from each loser to the winner.
func (l ledger) transfer(winner string, losers []string, amount decimal.Decimal) {
	for _, id := range losers {
		l.entries[id].moneyOut = l.entries[id].moneyOut.Sub(amount)
		l.entries[winner].moneyIn = l.entries[winner].moneyIn.Add(amount)
	}
}

// leaders returns the eligible players sharing the highest skins count, in
// roster order.
func (l ledger) leaders(eligible map[string]bool) []string {
	var (
		best  = -1
		leads []string
	)
	for _, id := range l.order {
		if !eligible[id] {
			continue
		}
		won := l.entries[id].skinsWon
		switch {
		case won > best:
			best = won
			leads = []string{id}
		case won == best:
			leads = append(leads, id)
		}
	}
	return leads
}

func (l ledger) summary(stake decimal.Decimal) map[string]PlayerSummary {
	out := make(map[string]PlayerSummary, len(l.entries))
	for id, e := range l.entries {
		out[id] = PlayerSummary{
			SkinsWon:   e.skinsWon,
			TotalValue: stake.Mul(decimal.NewFromInt(int64(e.skinsWon))),
			MoneyIn:    e.moneyIn,
			MoneyOut:   e.moneyOut,
			Total:      e.moneyIn.Add(e.moneyOut),
		}
	}
	return out
}

// FormatMoney renders an amount with exactly two decimals.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}
