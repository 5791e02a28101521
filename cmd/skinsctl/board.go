package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"github.com/mmynk/skinsgame/pkg/skinsrpc"
)

// holeRows builds the per-hole table in play order.
func holeRows(resp *skinsrpc.CalculateSkinsResponse) pterm.TableData {
	names := playerNames(resp)
	rows := pterm.TableData{{"Played", "Hole", "Result", "Score", "Skins value", "Carried in"}}

	for i, number := range playOrder(resp) {
		h, ok := resp.Holes[number]
		if !ok {
			continue
		}
		var result string
		var score int
		switch {
		case h.Tied:
			result = "tied"
			if h.TiedScore != nil {
				score = *h.TiedScore
			}
		case h.Winner != nil:
			result = names(*h.Winner)
			if h.WinnerScore != nil {
				score = *h.WinnerScore
			}
		}
		rows = append(rows, []string{
			humanize.Ordinal(i + 1),
			fmt.Sprint(number),
			result,
			fmt.Sprint(score),
			h.SkinsValue,
			fmt.Sprint(h.CarriedOver),
		})
	}
	return rows
}

// summaryRows builds the player table, biggest winner first.
func summaryRows(resp *skinsrpc.CalculateSkinsResponse) pterm.TableData {
	names := playerNames(resp)

	ids := make([]string, 0, len(resp.PlayerSummary))
	for id := range resp.PlayerSummary {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := resp.PlayerSummary[ids[i]], resp.PlayerSummary[ids[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.SkinsWon != b.SkinsWon {
			return a.SkinsWon > b.SkinsWon
		}
		return names(ids[i]) < names(ids[j])
	})

	rows := pterm.TableData{{"Player", "Skins", "Skins value", "In", "Out", "Net"}}
	for _, id := range ids {
		s := resp.PlayerSummary[id]
		rows = append(rows, []string{
			names(id),
			fmt.Sprint(s.SkinsWon),
			s.TotalValue,
			money(s.MoneyIn),
			money(s.MoneyOut),
			money(s.Total),
		})
	}
	return rows
}

func renderBoard(resp *skinsrpc.CalculateSkinsResponse) error {
	pterm.DefaultSection.Printfln("Skins for round %s (stake %s)", resp.RoundID, resp.SkinsValue)

	if len(resp.Holes) == 0 {
		pterm.Info.Println("No holes have been scored yet")
	} else if err := pterm.DefaultTable.WithHasHeader().WithData(holeRows(resp)).Render(); err != nil {
		return err
	}

	pterm.Println()
	return pterm.DefaultTable.WithHasHeader().WithData(summaryRows(resp)).Render()
}

func playerNames(resp *skinsrpc.CalculateSkinsResponse) func(string) string {
	byID := make(map[string]string, len(resp.Players))
	for _, p := range resp.Players {
		byID[p.ID] = p.Name
	}
	return func(id string) string {
		if name, ok := byID[id]; ok && name != "" {
			return name
		}
		return id
	}
}

// playOrder falls back to ascending hole numbers when the server sent no order.
func playOrder(resp *skinsrpc.CalculateSkinsResponse) []int {
	if len(resp.PlayOrder) > 0 {
		return resp.PlayOrder
	}
	order := make([]int, 0, len(resp.Holes))
	for n := range resp.Holes {
		order = append(order, n)
	}
	sort.Ints(order)
	return order
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
