package repository

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"padel-booking/internal/data/entity"
	"padel-booking/pkg/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *Repository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	api := apiclient.NewClient(server.URL, time.Second, "test")
	return NewRepository(api, NewMemorySessionRepository(time.Hour, zap.NewNop()), zap.NewNop())
}

func TestCourtFindAllAcceptsStringPrices(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courts", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Cancha 1","price_per_hour":"25.00"},{"id":2,"name":"Cancha 2","price_per_hour":30}]`))
	})

	courts, err := repo.Court.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, courts, 2)
	assert.Equal(t, entity.Amount(25), courts[0].PricePerHour)
	assert.Equal(t, "30.00", courts[1].PricePerHour.String())
}

func TestCourtFindAllFailure(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := repo.Court.FindAll(context.Background())
	assert.ErrorIs(t, err, ErrLoadCourts)
}

func TestCheckAvailabilityEmptyIsNotAnError(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/courts/7/availability", r.URL.Path)
		assert.Equal(t, "2025-10-05", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`{"available_slots":[]}`))
	})

	slots, err := repo.Court.CheckAvailability(context.Background(), 7, "2025-10-05")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestCheckAvailabilityFailure(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := repo.Court.CheckAvailability(context.Background(), 7, "2025-10-05")
	assert.ErrorIs(t, err, ErrLoadAvailability)
}

func TestReservationCreate(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reservations", r.URL.Path)
		assert.Equal(t, "res-1", r.Header.Get("Idempotency-Key"))
		var req entity.ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(1), req.CourtID)
		assert.Equal(t, "09:00", req.StartTime)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"court":1,"date":"2025-10-05","start_time":"09:00","end_time":"10:00","status":"PENDING"}`))
	})

	reservation, err := repo.Reservation.Create(context.Background(), entity.ReservationRequest{
		CourtID: 1, Date: "2025-10-05", StartTime: "09:00", EndTime: "10:00",
		Name: "Ana", Email: "ana@mail.com", Phone: "04141234567",
	}, "res-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), reservation.ID)
	assert.Equal(t, entity.ReservationStatusPending, reservation.Status)
}

func TestPaymentProcessSendsMultipart(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.Equal(t, "pay-1", r.Header.Get("Idempotency-Key"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "PAGO_MOVIL", r.FormValue("payment_type"))
		assert.Equal(t, "42", r.FormValue("reservation_id"))
		assert.Equal(t, "BANCO2", r.FormValue("bank"))
		_, _, err := r.FormFile("proof")
		assert.NoError(t, err)

		_, _ = w.Write([]byte(`{"success":true,"payment_id":9,"status":"PENDING"}`))
	})

	result, err := repo.Payment.Process(context.Background(), entity.PaymentSubmission{
		Method:         entity.PaymentTypePagoMovil,
		ReservationID:  42,
		Phone:          "04141234567",
		Bank:           "BANCO2",
		Reference:      "123456",
		Proof:          &entity.Attachment{Filename: "p.png", ContentType: "image/png", Data: []byte("x")},
		IdempotencyKey: "pay-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), result.PaymentID)
}

func TestPaymentFailureMessages(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		message   string
		transient bool
	}{
		{"backend message", http.StatusBadRequest, `{"success":false,"message":"card declined"}`, "card declined", false},
		{"success false on 200", http.StatusOK, `{"success":false,"message":"Referencia duplicada"}`, "Referencia duplicada", false},
		{"success false without message", http.StatusOK, `{"success":false}`, "Error procesando el pago", false},
		{"no message", http.StatusInternalServerError, ``, "Error procesando el pago", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := repo.Payment.ProcessSimple(context.Background(), entity.SimplePayment{PaymentType: entity.PaymentTypeZelle}, "k")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrPayment)
			assert.Equal(t, tc.message, PaymentMessage(err))
			assert.Equal(t, tc.transient, apiclient.IsTransient(err))
		})
	}
}

func TestPaymentTransportFailureIsTransient(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	api := apiclient.NewClient(server.URL, time.Second, "")
	repo := NewPaymentRepository(api, zap.NewNop())

	_, err := repo.ProcessSimple(context.Background(), entity.SimplePayment{PaymentType: entity.PaymentTypeStripe}, "k")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPayment))
	assert.True(t, apiclient.IsTransient(err))
	assert.Equal(t, "Error procesando el pago", PaymentMessage(err))
}
