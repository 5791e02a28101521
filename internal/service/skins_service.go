package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/skinsgame/internal/auth"
	"github.com/mmynk/skinsgame/internal/middleware"
	"github.com/mmynk/skinsgame/internal/skins"
	"github.com/mmynk/skinsgame/pkg/skinsrpc"
)

// SkinsService implements the Connect SkinsService.
type SkinsService struct {
	calculator *skins.Calculator
}

var _ skinsrpc.SkinsServiceHandler = (*SkinsService)(nil)

// NewSkinsService creates a SkinsService reading rounds from source.
func NewSkinsService(source skins.RoundSource) *SkinsService {
	return &SkinsService{calculator: skins.NewCalculator(source)}
}

// CalculateSkins computes the skins view of a round for the authenticated user.
func (s *SkinsService) CalculateSkins(ctx context.Context, req *connect.Request[skinsrpc.CalculateSkinsRequest]) (*connect.Response[skinsrpc.CalculateSkinsResponse], error) {
	userID := middleware.GetUserID(ctx)
	if userID == 0 {
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}

	slog.Info("CalculateSkins request received", "round_id", req.Msg.RoundID, "user_id", userID)

	result, err := s.calculator.Calculate(ctx, req.Msg.RoundID, userID)
	if err != nil {
		if code := codeOf(err); code == connect.CodeInternal {
			slog.Error("CalculateSkins failed", "round_id", req.Msg.RoundID, "error", err)
		} else {
			slog.Warn("CalculateSkins rejected", "round_id", req.Msg.RoundID, "user_id", userID, "error", err)
		}
		return nil, toConnectError(err)
	}

	slog.Info("CalculateSkins successful",
		"round_id", result.RoundID,
		"holes", len(result.Holes),
		"settled", len(result.Settlement),
	)
	return connect.NewResponse(NewCalculateSkinsResponse(result)), nil
}

// NewCalculateSkinsResponse converts a calculator result to its wire form.
func NewCalculateSkinsResponse(r *skins.Result) *skinsrpc.CalculateSkinsResponse {
	resp := &skinsrpc.CalculateSkinsResponse{
		RoundID:        r.RoundID,
		SkinsEnabled:   r.SkinsEnabled,
		SkinsValue:     r.SkinsValue,
		Holes:          make(map[int]skinsrpc.HoleResult, len(r.Holes)),
		PlayerSummary:  make(map[string]skinsrpc.PlayerSummary, len(r.Summary)),
		TotalCarryOver: r.TotalCarryOver,
		PlayOrder:      r.PlayOrder,
	}

	for _, h := range r.Holes {
		score := h.Score
		hole := skinsrpc.HoleResult{
			SkinsValue:  skins.FormatMoney(h.SkinsValue),
			CarriedOver: h.CarriedOver,
		}
		if h.Tied {
			hole.Tied = true
			hole.TiedScore = &score
		} else {
			winner := h.Winner
			hole.Winner = &winner
			hole.WinnerScore = &score
		}
		resp.Holes[h.Number] = hole
	}

	for id, p := range r.Summary {
		resp.PlayerSummary[id] = skinsrpc.PlayerSummary{
			SkinsWon:   p.SkinsWon,
			TotalValue: skins.FormatMoney(p.TotalValue),
			MoneyIn:    p.MoneyIn.InexactFloat64(),
			MoneyOut:   p.MoneyOut.InexactFloat64(),
			Total:      p.Total.InexactFloat64(),
		}
	}

	for _, p := range r.Players {
		resp.Players = append(resp.Players, skinsrpc.Player{
			ID:      p.ID,
			Name:    p.DisplayName(),
			IsGuest: p.IsGuest,
		})
	}
	return resp
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, skins.ErrValidation):
		return connect.CodeInvalidArgument
	case errors.Is(err, skins.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, skins.ErrForbidden):
		return connect.CodePermissionDenied
	default:
		return connect.CodeInternal
	}
}

// toConnectError maps calculator errors to Connect codes. Unclassified errors
// are reported as internal without leaking their message.
func toConnectError(err error) error {
	code := codeOf(err)
	if code == connect.CodeInternal {
		return connect.NewError(code, errors.New("failed to calculate skins"))
	}
	return connect.NewError(code, err)
}
