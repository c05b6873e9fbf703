package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fintrackapp/fintrack/internal/domain"
	"github.com/fintrackapp/fintrack/internal/service"
	customError "github.com/fintrackapp/fintrack/pkg/errors"
	"github.com/fintrackapp/fintrack/pkg/response"
)

type PlannerHandler struct {
	service   *service.PlannerService
	validator *validator.Validate
}

func NewPlannerHandler(service *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateAccount handles POST /api/v1/accounts
func (h *PlannerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateAccountRequest
	if !h.decode(w, r, &request) {
		return
	}

	account, err := h.service.CreateAccount(r.Context(), &request)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Created(w, account)
}

// ListAccounts handles GET /api/v1/accounts
func (h *PlannerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Success(w, accounts)
}

// GetSchedule handles GET /api/v1/accounts/{accountId}/schedule
func (h *PlannerHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	schedule, err := h.service.GetLoanSchedule(r.Context(), accountID)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{AccountID: accountID, Schedule: schedule})
}

// SetOverride handles PUT /api/v1/accounts/{accountId}/schedule/{paymentNumber}/override
func (h *PlannerHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}
	paymentNumber, ok := h.paymentNumber(w, r)
	if !ok {
		return
	}

	var request domain.SetOverrideRequest
	if !h.decode(w, r, &request) {
		return
	}

	override := domain.PaymentOverride{
		TotalPayment: request.TotalPayment,
		Principal:    request.Principal,
		Interest:     request.Interest,
	}
	if err := h.service.SetPaymentOverride(r.Context(), accountID, paymentNumber, override); err != nil {
		respondBusinessError(w, err)
		return
	}

	// Return the recomputed schedule so the caller sees the override applied
	schedule, err := h.service.GetLoanSchedule(r.Context(), accountID)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Success(w, domain.ScheduleResponse{AccountID: accountID, Schedule: schedule})
}

// ClearOverride handles DELETE /api/v1/accounts/{accountId}/schedule/{paymentNumber}/override
func (h *PlannerHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}
	paymentNumber, ok := h.paymentNumber(w, r)
	if !ok {
		return
	}

	if err := h.service.ClearPaymentOverride(r.Context(), accountID, paymentNumber); err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Success(w, nil)
}

// GetForecast handles GET /api/v1/forecast?days=N
func (h *PlannerHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "days must be an integer", err)
			return
		}
		days = parsed
	}

	points, err := h.service.GetBalanceForecast(r.Context(), days)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Success(w, domain.ForecastResponse{BaseCurrency: domain.BaseCurrency, Points: points})
}

// CreateTransaction handles POST /api/v1/transactions
func (h *PlannerHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateTransactionRequest
	if !h.decode(w, r, &request) {
		return
	}

	tx, err := h.service.RecordTransaction(r.Context(), &request)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Created(w, tx)
}

// CreateRecurring handles POST /api/v1/recurring
func (h *PlannerHandler) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateRecurringRequest
	if !h.decode(w, r, &request) {
		return
	}

	recurring, err := h.service.CreateRecurring(r.Context(), &request)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Created(w, recurring)
}

// CreateGoal handles POST /api/v1/goals
func (h *PlannerHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateGoalRequest
	if !h.decode(w, r, &request) {
		return
	}

	goal, err := h.service.CreateGoal(r.Context(), &request)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Created(w, goal)
}

// CreateBill handles POST /api/v1/bills
func (h *PlannerHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateBillRequest
	if !h.decode(w, r, &request) {
		return
	}

	bill, err := h.service.CreateBill(r.Context(), &request)
	if err != nil {
		respondBusinessError(w, err)
		return
	}

	response.Created(w, bill)
}

// decode parses and validates a JSON request body, writing the error
// response itself when the body is bad.
func (h *PlannerHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "validation failed", err)
		return false
	}
	return true
}

func (h *PlannerHandler) accountID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["accountId"])
	if err != nil {
		response.BadRequest(w, "invalid account id", err)
		return uuid.Nil, false
	}
	return id, true
}

func (h *PlannerHandler) paymentNumber(w http.ResponseWriter, r *http.Request) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)["paymentNumber"])
	if err != nil {
		response.BadRequest(w, "invalid payment number", err)
		return 0, false
	}
	return n, true
}

// respondBusinessError maps service errors onto HTTP statuses.
func respondBusinessError(w http.ResponseWriter, err error) {
	var businessErr *customError.BusinessError
	if !errors.As(err, &businessErr) {
		response.InternalServerError(w, "internal error", err)
		return
	}

	switch businessErr.Code {
	case customError.ErrCodeAccountNotFound:
		response.BusinessError(w, http.StatusNotFound, businessErr.Code, businessErr.Message)
	case customError.ErrCodeNotALoanAccount,
		customError.ErrCodeInvalidOverride,
		customError.ErrCodeInvalidForecastSpan:
		response.BusinessError(w, http.StatusBadRequest, businessErr.Code, businessErr.Message)
	default:
		response.BusinessError(w, http.StatusInternalServerError, businessErr.Code, businessErr.Message)
	}
}
