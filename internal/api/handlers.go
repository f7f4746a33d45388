package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/remiteasy/ledger/pkg/types"
	"github.com/remiteasy/ledger/pkg/units"
)

// transferView is the JSON representation of a transfer record.
type transferView struct {
	Address     string     `json:"address"`
	Sender      string     `json:"sender"`
	Recipient   string     `json:"recipient"`
	Amount      uint64     `json:"amount_lamports"`
	AmountUSDC  string     `json:"amount_usdc"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Memo        string     `json:"memo,omitempty"`
	Reference   string     `json:"reference"`
}

func viewTransfer(t *types.Transfer) transferView {
	return transferView{
		Address:     t.Address,
		Sender:      t.Sender.String(),
		Recipient:   t.Recipient.String(),
		Amount:      t.Amount,
		AmountUSDC:  units.FormatUSDC(t.Amount),
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		CompletedAt: t.CompletedAt,
		Memo:        t.Memo,
		Reference:   t.Reference,
	}
}

// stateView is the JSON representation of the program state.
type stateView struct {
	Admin         string `json:"admin"`
	FeeRateBps    uint16 `json:"fee_rate_bps"`
	TransferCount uint64 `json:"transfer_count"`
	TotalVolume   uint64 `json:"total_volume_lamports"`
	VolumeUSDC    string `json:"total_volume_usdc"`
}

func (s *Server) handleInitialize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FeeRateBps uint16 `json:"fee_rate_bps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	state, err := s.engine.Initialize(r.Context(), callerFrom(r), req.FeeRateBps)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, viewState(state))
}

// amountFromRequest resolves the lamport amount from a request that may
// carry either an integer lamport amount or a USDC decimal string.
func amountFromRequest(lamports uint64, usdc string) (uint64, error) {
	if usdc != "" {
		return units.ParseUSDC(usdc)
	}
	return lamports, nil
}

func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Recipient  string `json:"recipient"`
		Amount     uint64 `json:"amount_lamports"`
		AmountUSDC string `json:"amount_usdc"`
		Memo       string `json:"memo"`
		Reference  string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	recipient, err := types.ParseIdentity(req.Recipient)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	amount, err := amountFromRequest(req.Amount, req.AmountUSDC)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	transfer, err := s.engine.Send(r.Context(), callerFrom(r), recipient, amount, req.Memo, req.Reference)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusCreated, viewTransfer(transfer))
}

func (s *Server) handleReceive(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	transfer, err := s.engine.Receive(r.Context(), callerFrom(r), address)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, viewTransfer(transfer))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	transfer, err := s.engine.Cancel(r.Context(), callerFrom(r), address)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, viewTransfer(transfer))
}

func (s *Server) handleGetTransfer(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]

	transfer, err := s.engine.Transfer(r.Context(), address)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, viewTransfer(transfer))
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := types.TransferFilter{
		Sender:    types.Identity(q.Get("sender")),
		Recipient: types.Identity(q.Get("recipient")),
		Status:    q.Get("status"),
	}

	transfers, err := s.engine.Transfers(r.Context(), filter)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	views := make([]transferView, 0, len(transfers))
	for _, t := range transfers {
		views = append(views, viewTransfer(t))
	}
	WriteSuccess(w, http.StatusOK, views)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state, err := s.engine.State(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, viewState(state))
}

func viewState(state *types.ProgramState) stateView {
	return stateView{
		Admin:         state.Admin.String(),
		FeeRateBps:    state.FeeRateBps,
		TransferCount: state.TransferCount,
		TotalVolume:   state.TotalVolume,
		VolumeUSDC:    units.FormatUSDC(state.TotalVolume),
	}
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	caller := callerFrom(r)

	balance, err := s.engine.Balance(r.Context(), caller)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]any{
		"identity":         caller.String(),
		"balance_lamports": balance,
		"balance_usdc":     units.FormatUSDC(balance),
	})
}

// handleDeposit funds a party's holdings. Only the recorded
// administrator may deposit.
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		To         string `json:"to"`
		Amount     uint64 `json:"amount_lamports"`
		AmountUSDC string `json:"amount_usdc"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	state, err := s.engine.State(r.Context())
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	if callerFrom(r) != state.Admin {
		WriteError(w, http.StatusForbidden, "FORBIDDEN", "only the administrator can deposit")
		return
	}

	to, err := types.ParseIdentity(req.To)
	if err != nil {
		writeLedgerError(w, err)
		return
	}
	amount, err := amountFromRequest(req.Amount, req.AmountUSDC)
	if err != nil {
		writeLedgerError(w, err)
		return
	}

	if err := s.engine.Deposit(r.Context(), to, amount); err != nil {
		writeLedgerError(w, err)
		return
	}
	WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
