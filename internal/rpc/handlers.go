package rpc

import (
	"encoding/json"
	"net/http"

	"github.com/gophercoin/gophercoin/pkg/tx"
	"github.com/gophercoin/gophercoin/pkg/types"
)

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, pingResponse{Status: "ok"})
}

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chain.Blocks())
}

func (s *Server) handleMineRawBlock(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Data []*tx.Transaction `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if len(body.Data) == 0 {
		writeError(w, http.StatusBadRequest, "validation failed", "data must be a non-empty transaction list")
		return
	}

	blk := s.chain.Mine(body.Data)
	if err := s.chain.Append(blk); err != nil {
		writeDomainError(w, err)
		return
	}
	s.broker.Blockchain(nil)
	writeJSON(w, http.StatusOK, blk)
}

func (s *Server) handleMineBlock(w http.ResponseWriter, r *http.Request) {
	blk, err := s.chain.MineCoinbase(s.wallet.Address())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.broker.Blockchain(nil)
	writeJSON(w, http.StatusOK, blk)
}

func (s *Server) handleAddress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, addressResponse{Address: s.wallet.Address().String()})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, balanceResponse{Balance: s.wallet.Balance(s.chain.UTXOSet())})
}

func (s *Server) handleUnspentOutputs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chain.UTXOSet().All())
}

func (s *Server) handleMyUnspentOutputs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.wallet.MyUnspent(s.chain.UTXOSet()))
}

func (s *Server) handleMineTransaction(w http.ResponseWriter, r *http.Request) {
	var body sendTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.Address == "" || body.Amount == 0 {
		writeError(w, http.StatusBadRequest, "validation failed", "address and amount are required")
		return
	}

	transfer, err := s.wallet.CreateTransaction(types.Address(body.Address), body.Amount, s.wallet.MyUnspent(s.chain.UTXOSet()))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	blk, err := s.chain.MineTransfer(s.wallet.Address(), transfer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.broker.Blockchain(nil)
	writeJSON(w, http.StatusOK, blk)
}

func (s *Server) handleSendTransaction(w http.ResponseWriter, r *http.Request) {
	var body sendTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.Address == "" || body.Amount == 0 {
		writeError(w, http.StatusBadRequest, "validation failed", "address and amount are required")
		return
	}

	transaction, err := s.wallet.CreateTransaction(types.Address(body.Address), body.Amount, s.wallet.MyUnspent(s.chain.UTXOSet()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := s.chain.Mempool().Add(transaction, s.chain.UTXOSet()); err != nil {
		writeDomainError(w, err)
		return
	}
	s.broker.Transaction(nil)
	writeJSON(w, http.StatusOK, transaction)
}

func (s *Server) handleTransactionPool(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.chain.Mempool().All())
}

func (s *Server) handleAddPeer(w http.ResponseWriter, r *http.Request) {
	var body addPeerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if body.Peer == "" {
		writeError(w, http.StatusBadRequest, "validation failed", "peer is required")
		return
	}
	if err := s.broker.Peer(body.Peer); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pingResponse{Status: "ok"})
}

func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.broker.Peers())
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		Height:     s.chain.Height(),
		Difficulty: s.chain.CurrentDifficulty(),
		Peers:      len(s.broker.Peers()),
	})
}
