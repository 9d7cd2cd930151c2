package http

import (
	stdhttp "net/http"
	"strings"
	"testing"

	walletDomain "finvault-backend/internal/domain/wallet"
	"finvault-backend/pkg/id"
)

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.request(t, stdhttp.MethodGet, "/health", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	body := decodeBody[map[string]any](t, rec)
	if body["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}

func TestCreateWallet(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(t, stdhttp.MethodPost, "/wallets", map[string]any{
		"user_id": strings.Repeat("a", 32),
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	w := decodeBody[walletDomain.Wallet](t, rec)
	if w.Currency != "USD" || len(w.WalletID) != 32 {
		t.Fatalf("unexpected wallet: %+v", w)
	}

	// invalid user id → 400 with field details
	rec = s.request(t, stdhttp.MethodPost, "/wallets", map[string]any{"user_id": "nope"})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	resp := decodeBody[ErrorResponse](t, rec)
	if !containsFieldMsg(resp.Details, "UserID", "32-char lowercase hex") {
		t.Fatalf("missing hex32 detail: %+v", resp.Details)
	}
}

func TestCreateTransaction_DepositAndValidation(t *testing.T) {
	s := newTestServer(t)
	w := s.seedWallet(t, 0)

	rec := s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    100.50,
		"type":      "deposit",
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("want 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	txn := decodeBody[walletDomain.Transaction](t, rec)
	if txn.Status != walletDomain.StatusCompleted || txn.Amount != 100.50 {
		t.Fatalf("unexpected transaction: %+v", txn)
	}

	// three-decimal amount violates dec2
	rec = s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    10.555,
		"type":      "deposit",
	})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("dec2 violation: want 400, got %d", rec.Code)
	}

	// unsupported type
	rec = s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    10,
		"type":      "transfer",
	})
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("bad type: want 400, got %d", rec.Code)
	}
}

func TestCreateTransaction_WithdrawalInsufficient(t *testing.T) {
	s := newTestServer(t)
	w := s.seedWallet(t, 20)

	rec := s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    21,
		"type":      "withdrawal",
	})
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("want 422, got %d body=%s", rec.Code, rec.Body.String())
	}
	resp := decodeBody[ErrorResponse](t, rec)
	if !strings.Contains(resp.Error, "insufficient wallet balance") {
		t.Fatalf("unexpected error: %q", resp.Error)
	}
}

func TestApproveTransaction_Flow(t *testing.T) {
	s := newTestServer(t)
	w := s.seedWallet(t, 100)

	rec := s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    40,
		"type":      "withdrawal",
		"hold":      true,
	})
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("hold create: want 201, got %d", rec.Code)
	}
	held := decodeBody[walletDomain.Transaction](t, rec)
	if held.Status != walletDomain.StatusPending {
		t.Fatalf("want pending, got %s", held.Status)
	}

	rec = s.request(t, stdhttp.MethodPost, "/transactions/"+held.TransactionID+"/approve", nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	// approving again is a conflict, not a second debit
	rec = s.request(t, stdhttp.MethodPost, "/transactions/"+held.TransactionID+"/approve", nil)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("re-approve: want 409, got %d", rec.Code)
	}

	rec = s.request(t, stdhttp.MethodGet, "/wallets/"+w.WalletID, nil)
	got := decodeBody[walletDomain.Wallet](t, rec)
	if got.Balance != 60 {
		t.Fatalf("balance after single approval: want 60, got %v", got.Balance)
	}

	// unknown id → 404
	rec = s.request(t, stdhttp.MethodPost, "/transactions/"+id.NewID32()+"/approve", nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown txn: want 404, got %d", rec.Code)
	}
}

func TestRejectTransaction(t *testing.T) {
	s := newTestServer(t)
	w := s.seedWallet(t, 100)

	rec := s.request(t, stdhttp.MethodPost, "/transactions", map[string]any{
		"user_id":   w.UserID,
		"wallet_id": w.WalletID,
		"amount":    40,
		"type":      "withdrawal",
		"hold":      true,
	})
	held := decodeBody[walletDomain.Transaction](t, rec)

	rec = s.request(t, stdhttp.MethodPost, "/transactions/"+held.TransactionID+"/reject", map[string]any{
		"reason": "manual review failed",
	})
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reject: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	rejected := decodeBody[walletDomain.Transaction](t, rec)
	if rejected.Status != walletDomain.StatusRejected || rejected.RejectionReason != "manual review failed" {
		t.Fatalf("unexpected rejection: %+v", rejected)
	}

	rec = s.request(t, stdhttp.MethodGet, "/wallets/"+w.WalletID, nil)
	got := decodeBody[walletDomain.Wallet](t, rec)
	if got.Balance != 100 {
		t.Fatalf("rejection must not move money: %v", got.Balance)
	}
}

func TestCryptoDeposit_Replay(t *testing.T) {
	s := newTestServer(t)
	w := s.seedWallet(t, 0)

	body := map[string]any{
		"user_id":            w.UserID,
		"amount":             250.0,
		"currency":           "USDT",
		"external_reference": "chain-tx-1",
	}
	rec := s.request(t, stdhttp.MethodPost, "/deposits/crypto", body)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("deposit: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	first := decodeBody[walletDomain.Transaction](t, rec)

	rec = s.request(t, stdhttp.MethodPost, "/deposits/crypto", body)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("replay: want 200, got %d", rec.Code)
	}
	second := decodeBody[walletDomain.Transaction](t, rec)
	if first.TransactionID != second.TransactionID {
		t.Fatalf("replay created a new transaction: %s vs %s", first.TransactionID, second.TransactionID)
	}

	rec = s.request(t, stdhttp.MethodGet, "/wallets/"+w.WalletID, nil)
	got := decodeBody[walletDomain.Wallet](t, rec)
	if got.Balance != 250 {
		t.Fatalf("want single credit of 250, got %v", got.Balance)
	}
}
