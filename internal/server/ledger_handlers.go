package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/fredrickmpepo89-ctrl/vicoba-unified-platform/internal/storage"
)

type contributeRequest struct {
	Member string `json:"member"`
	Amount int64  `json:"amount"`
}

type payRequest struct {
	Payer  string `json:"payer"`
	Payee  string `json:"payee"`
	Amount int64  `json:"amount"`
}

type confirmationResponse struct {
	Ref            string `json:"ref"`
	RoundFinalized bool   `json:"round_finalized"`
}

func (s *Server) handleContribute(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	var req contributeRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conf, err := s.ledger.Contribute(r.Context(), groupID, req.Member, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmationResponse{Ref: conf.Ref, RoundFinalized: conf.RoundFinalized})
}

func (s *Server) handlePay(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	var req payRequest
	if err := decode(r, &req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conf, err := s.ledger.Pay(r.Context(), groupID, req.Payer, req.Payee, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmationResponse{Ref: conf.Ref, RoundFinalized: conf.RoundFinalized})
}

type trackerEntryResponse struct {
	Name        string `json:"name"`
	Contributed int64  `json:"contributed"`
	Pending     bool   `json:"pending"`
	IsNext      bool   `json:"is_next"`
}

type trackerResponse struct {
	TotalPot      int64                  `json:"total_pot"`
	NextRecipient string                 `json:"next_recipient"`
	Entries       []trackerEntryResponse `json:"entries"`
	Pending       []string               `json:"pending"`
}

func (s *Server) handleRoundTracker(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	tracker, err := s.rounds.Tracker(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := trackerResponse{
		TotalPot:      tracker.TotalPot,
		NextRecipient: tracker.NextRecipient,
		Entries:       make([]trackerEntryResponse, len(tracker.Entries)),
		Pending:       tracker.Pending,
	}
	for i, e := range tracker.Entries {
		resp.Entries[i] = trackerEntryResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

type roundResponse struct {
	ID          int64  `json:"id"`
	Recipient   string `json:"recipient"`
	TotalAmount int64  `json:"total_amount"`
	RoundDate   int64  `json:"round_date"`
}

func (s *Server) handleListRounds(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	rounds, err := s.rounds.ListRounds(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]roundResponse, len(rounds))
	for i, rd := range rounds {
		resp[i] = roundResponse{ID: rd.ID, Recipient: rd.Recipient, TotalAmount: rd.TotalAmount, RoundDate: rd.RoundDate}
	}
	writeJSON(w, http.StatusOK, resp)
}

type transactionResponse struct {
	ID        int64  `json:"id"`
	Member    string `json:"member"`
	Action    string `json:"action"`
	Amount    int64  `json:"amount"`
	Timestamp int64  `json:"timestamp"`
	RoundID   int64  `json:"round_id,omitempty"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	filter := storage.TransactionFilter{MemberName: r.URL.Query().Get("member")}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeErrorStatus(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	txns, err := s.ledger.Transactions(r.Context(), groupID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]transactionResponse, len(txns))
	for i, txn := range txns {
		resp[i] = transactionResponse{
			ID:        txn.ID,
			Member:    txn.MemberName,
			Action:    string(txn.Action),
			Amount:    txn.Amount,
			Timestamp: txn.Timestamp,
			RoundID:   txn.RoundID,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	groupID, ok := s.requireGroup(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("%s_ledger_%s", groupID, time.Now().UTC().Format("20060102"))
	switch format := r.URL.Query().Get("format"); format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".csv"))
		if err := s.exporter.WriteCSV(r.Context(), w, groupID); err != nil {
			writeError(w, err)
		}
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".xlsx"))
		if err := s.exporter.WriteXLSX(r.Context(), w, groupID); err != nil {
			writeError(w, err)
		}
	default:
		writeErrorStatus(w, http.StatusBadRequest, "format must be csv or xlsx")
	}
}
