// Package server implements the collections backend consumed by the
// entry clients: roster, prior payments, batch updates, worker review,
// and payment history.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pream14/FinanceFrontend/internal/ledger"
	"github.com/pream14/FinanceFrontend/internal/rosterimport"
	"github.com/pream14/FinanceFrontend/internal/server/store"
)

type Repository interface {
	ListCustomers(ctx context.Context) ([]store.Customer, error)
	UpsertCustomers(ctx context.Context, customers []store.Customer) (int, error)
	GetWorker(ctx context.Context, userID string) (*store.Worker, error)
	ListWorkers(ctx context.Context) ([]store.Worker, error)
	PaymentsByCustomerAndDate(ctx context.Context, customerID, day string) ([]store.Payment, error)
	PreviousAmount(ctx context.Context, customerID, day string) (int64, error)
	UpsertPayment(ctx context.Context, p store.Payment) error
	EntriesByWorker(ctx context.Context, workerID, day string) ([]store.WorkerEntryRow, int64, error)
	PaymentHistory(ctx context.Context, customerID, customerName string) ([]store.HistoryRow, error)
}

type Handler struct {
	repo      Repository
	auth      *Authenticator
	importSvc *rosterimport.Service
}

func NewHandler(repo Repository, auth *Authenticator, importSvc *rosterimport.Service) *Handler {
	return &Handler{repo: repo, auth: auth, importSvc: importSvc}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "user_id and password are required")
		return
	}

	worker, err := h.repo.GetWorker(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid user ID or password")
			return
		}

		slog.Error("login lookup failed", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	if !CheckPassword(worker.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid user ID or password")
		return
	}

	token, err := h.auth.IssueToken(worker.UserID, worker.Role)
	if err != nil {
		slog.Error("issuing token failed", "user_id", req.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"role":         worker.Role,
		"username":     worker.Username,
	})
}

type customerDTO struct {
	CustomerID    string `json:"customer_id"`
	ContactNumber string `json:"contact_number"`
	Name          string `json:"name"`
	Location      string `json:"location"`
}

func (h *Handler) getCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.ListCustomers(r.Context())
	if err != nil {
		slog.Error("listing customers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	out := make([]customerDTO, 0, len(customers))

	for _, c := range customers {
		out = append(out, customerDTO{
			CustomerID:    c.ContactNumber,
			ContactNumber: c.ContactNumber,
			Name:          c.Name,
			Location:      c.Location,
		})
	}

	writeJSON(w, http.StatusOK, out)
}

func dayParam(r *http.Request) (string, error) {
	return ledger.ParseDay(r.URL.Query().Get("payment_date"))
}

func (h *Handler) getPaymentByDate(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	day, err := dayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}

	payments, err := h.repo.PaymentsByCustomerAndDate(r.Context(), customerID, day)
	if err != nil {
		slog.Error("payments by date failed", "customer_id", customerID, "day", day, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	type paymentDTO struct {
		CustomerID string `json:"customer_id"`
		AmountPaid int64  `json:"amount_paid"`
	}

	out := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentDTO{CustomerID: p.CustomerID, AmountPaid: p.AmountPaid})
	}

	writeJSON(w, http.StatusOK, map[string]any{"payments": out})
}

func (h *Handler) getPreviousAmount(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		writeError(w, http.StatusBadRequest, "customer_id is required")
		return
	}

	day, err := dayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}

	amount, err := h.repo.PreviousAmount(r.Context(), customerID, day)
	if err != nil {
		slog.Error("previous amount failed", "customer_id", customerID, "day", day, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"previous_amount": amount})
}

type updateDTO struct {
	WorkerID       string `json:"worker_id"`
	CustomerID     string `json:"customer_id"`
	AmountPaid     int64  `json:"amount_paid"`
	PreviousAmount int64  `json:"previous_amount"`
	PaymentStatus  string `json:"payment_status"`
	PaymentType    string `json:"payment_type"`
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var updates []updateDTO
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The wire format carries no date; the batch applies to the
	// operational day it is received on.
	day := r.URL.Query().Get("payment_date")
	if day == "" {
		day = ledger.Today()
	} else {
		var err error
		if day, err = ledger.ParseDay(day); err != nil {
			writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
			return
		}
	}

	workerID := WorkerID(r.Context())

	for _, u := range updates {
		if u.CustomerID == "" {
			writeError(w, http.StatusBadRequest, "customer_id is required on every record")
			return
		}

		status := u.PaymentStatus
		if status == "" {
			status = string(ledger.StatusFor(u.AmountPaid))
		}

		paymentType := u.PaymentType
		if paymentType == "" {
			paymentType = string(ledger.TypePayment)
		}

		err := h.repo.UpsertPayment(r.Context(), store.Payment{
			CustomerID:     u.CustomerID,
			WorkerID:       workerID,
			AmountPaid:     u.AmountPaid,
			PreviousAmount: u.PreviousAmount,
			PaymentStatus:  status,
			PaymentType:    paymentType,
			PaymentDate:    day,
		})
		if err != nil {
			slog.Error("upserting payment failed", "customer_id", u.CustomerID, "day", day, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")

			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "payments updated successfully"})
}

func (h *Handler) getWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.repo.ListWorkers(r.Context())
	if err != nil {
		slog.Error("listing workers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	type workerDTO struct {
		UserID   string `json:"user_id"`
		Username string `json:"username"`
	}

	out := make([]workerDTO, 0, len(workers))
	for _, wk := range workers {
		out = append(out, workerDTO{UserID: wk.UserID, Username: wk.Username})
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getEntriesByWorker(w http.ResponseWriter, r *http.Request) {
	day, err := dayParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}

	workerID := r.URL.Query().Get("worker_id")

	entries, total, err := h.repo.EntriesByWorker(r.Context(), workerID, day)
	if err != nil {
		slog.Error("entries by worker failed", "worker_id", workerID, "day", day, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	type entryDTO struct {
		CustomerID    string `json:"customer_id"`
		CustomerName  string `json:"customer_name"`
		AmountPaid    int64  `json:"amount_paid"`
		PaymentStatus string `json:"payment_status"`
	}

	out := make([]entryDTO, 0, len(entries))

	for _, e := range entries {
		out = append(out, entryDTO{
			CustomerID:    e.CustomerID,
			CustomerName:  e.CustomerName,
			AmountPaid:    e.AmountPaid,
			PaymentStatus: e.PaymentStatus,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"payments":          out,
		"total_amount_paid": total,
	})
}

func (h *Handler) getPaymentHistory(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	customerName := r.URL.Query().Get("customer_name")

	if customerID == "" && customerName == "" {
		writeError(w, http.StatusBadRequest, "either customer_id or customer_name must be provided")
		return
	}

	history, err := h.repo.PaymentHistory(r.Context(), customerID, customerName)
	if err != nil {
		slog.Error("payment history failed", "customer_id", customerID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	type historyDTO struct {
		CustomerID   string `json:"customer_id"`
		CustomerName string `json:"customer_name"`
		PaymentDate  string `json:"payment_date"`
		AmountPaid   int64  `json:"amount_paid"`
		LoanAmount   int64  `json:"loan_amount"`
		Balance      int64  `json:"balance"`
	}

	out := make([]historyDTO, 0, len(history))

	for _, row := range history {
		out = append(out, historyDTO{
			CustomerID:   row.CustomerID,
			CustomerName: row.CustomerName,
			PaymentDate:  row.PaymentDate,
			AmountPaid:   row.AmountPaid,
			LoanAmount:   row.LoanAmount,
			Balance:      row.Balance,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"payments": out})
}

func (h *Handler) importCustomers(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}

	format := rosterimport.Format(r.FormValue("format"))
	if format == "" {
		format = rosterimport.FormatFieldCSV
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	records, err := h.importSvc.Import(format, file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	customers := make([]store.Customer, 0, len(records))

	for _, rec := range records {
		customers = append(customers, store.Customer{
			ContactNumber: rec.Customer.Contact,
			Name:          rec.Customer.Name,
			Location:      rec.Customer.Location,
			LoanAmount:    rec.LoanAmount,
		})
	}

	imported, err := h.repo.UpsertCustomers(r.Context(), customers)
	if err != nil {
		slog.Error("importing customers failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")

		return
	}

	writeJSON(w, http.StatusCreated, map[string]int{"imported": imported})
}
