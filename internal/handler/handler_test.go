// Copyright (c) 2025-2026 ClubArena
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/clubarena/clubsite-go/internal/auth"
	"github.com/clubarena/clubsite-go/internal/cache"
	"github.com/clubarena/clubsite-go/internal/notify"
	"github.com/clubarena/clubsite-go/internal/payment"
	"github.com/clubarena/clubsite-go/internal/service"
	"github.com/clubarena/clubsite-go/internal/session"
	"github.com/clubarena/clubsite-go/internal/store"
	"github.com/clubarena/clubsite-go/internal/testutil"
	"github.com/clubarena/clubsite-go/internal/verification"
)

// newTestServer wires a full handler over a fresh database and an
// in-memory cache. The payment gateway is left unconfigured.
func newTestServer(t *testing.T) (*httptest.Server, *store.Queries) {
	t.Helper()
	return newTestServerWithPayments(t, payment.NewClient("", "", ""))
}

func newTestServerWithPayments(t *testing.T, payments *payment.Client) (*httptest.Server, *store.Queries) {
	t.Helper()

	db := testutil.TestDB(t)
	queries := store.New(db)
	logger := testutil.TestLogger()

	mem := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { mem.Close() })
	reval := service.NewRevalidation(cache.NewRevalidator(mem, time.Minute))

	audit := service.NewAuditService(queries)
	media, err := service.NewMediaService(t.TempDir(), audit)
	require.NoError(t, err)

	h := New(Deps{
		DB:       db,
		Logger:   logger,
		AdminSM:  session.NewAdmin(db, true),
		UserSM:   session.NewUserManager(strings.Repeat("s", 32), false),
		Reval:    reval,
		Verifier: verification.NewManager(queries, notify.NoopMailer{}, notify.NoopSMSSender{}),
		Payments: payments,

		Users:      service.NewUserService(queries, audit),
		Events:     service.NewEventService(queries, reval, audit),
		Trainings:  service.NewTrainingService(queries, reval, audit),
		Camps:      service.NewCampService(queries, reval, audit),
		Products:   service.NewProductService(queries, reval, audit),
		Orders:     service.NewOrderService(db, audit),
		Enquiries:  service.NewEnquiryService(queries, audit),
		Committee:  service.NewCommitteeService(queries, reval, audit),
		Content:    service.NewContentService(queries, reval, audit),
		Newsletter: service.NewNewsletterService(queries, notify.NoopMailer{}, audit),
		Documents:  service.NewDocumentService(queries, reval, audit),
		Dashboard:  service.NewDashboardService(queries, logger),
		Media:      media,
		Audit:      audit,
	})

	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	return srv, queries
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func seedProduct(t *testing.T, queries *store.Queries, name string, priceCents int64) store.Product {
	t.Helper()
	now := time.Now().UTC()
	product, err := queries.CreateProduct(context.Background(), store.CreateProductParams{
		ID:         uuid.NewString(),
		Name:       name,
		PriceCents: priceCents,
		Category:   "kits",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	require.NoError(t, err)
	return product
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "ok", body["status"])
}

func TestCreateOrder_MissingProductsRejected(t *testing.T) {
	srv, queries := newTestServer(t)
	known := seedProduct(t, queries, "Club Jersey", 4500)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/orders", map[string]any{
		"customer_name": "Ada",
		"email":         "ada@example.com",
		"items": []map[string]any{
			{"product_id": known.ID, "quantity": 1},
			{"product_id": "ghost-1", "quantity": 2},
			{"product_id": "ghost-2", "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	missing, ok := body["missing_product_ids"].([]any)
	require.True(t, ok, "response should name the unknown product ids")
	require.ElementsMatch(t, []any{"ghost-1", "ghost-2"}, missing)

	// Nothing may have been written.
	orders, err := queries.ListOrders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrder_Success(t *testing.T) {
	srv, queries := newTestServer(t)
	jersey := seedProduct(t, queries, "Club Jersey", 4500)
	ball := seedProduct(t, queries, "Match Ball", 2000)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/orders", map[string]any{
		"customer_name": "Ada",
		"email":         "ada@example.com",
		"items": []map[string]any{
			{"product_id": jersey.ID, "quantity": 2},
			{"product_id": ball.ID, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	order := body["order"].(map[string]any)
	require.EqualValues(t, 2*4500+2000, order["total_cents"])
	require.Equal(t, "pending", order["status"])
	require.Len(t, body["items"], 2)
}

func TestCreatePayment_NotConfigured(t *testing.T) {
	srv, queries := newTestServer(t)
	jersey := seedProduct(t, queries, "Club Jersey", 4500)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/orders", map[string]any{
		"customer_name": "Ada",
		"email":         "ada@example.com",
		"items":         []map[string]any{{"product_id": jersey.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := decodeBody(t, resp)["order"].(map[string]any)["id"].(string)

	resp = postJSON(t, srv.Client(), srv.URL+"/api/payments", map[string]any{"order_id": orderID})
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePayment_ReturnsOrderAmountCurrency(t *testing.T) {
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pay_123","status":"created","redirect_url":"https://gateway.example/pay_123"}`))
	}))
	defer gateway.Close()

	srv, queries := newTestServerWithPayments(t, payment.NewClient(gateway.URL, "pk_test", "sk_test"))
	jersey := seedProduct(t, queries, "Club Jersey", 4500)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/orders", map[string]any{
		"customer_name": "Ada",
		"email":         "ada@example.com",
		"items":         []map[string]any{{"product_id": jersey.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := decodeBody(t, resp)["order"].(map[string]any)["id"].(string)

	resp = postJSON(t, srv.Client(), srv.URL+"/api/payments", map[string]any{
		"order_id": orderID,
		"amount":   9000,
		"currency": "EUR",
		"notes":    "two jerseys",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, orderID, body["orderId"])
	require.EqualValues(t, 9000, body["amount"])
	require.Equal(t, "EUR", body["currency"])
	session, ok := body["payment"].(map[string]any)
	require.True(t, ok, "response should carry the gateway session")
	require.Equal(t, "pay_123", session["id"])
}

func TestCreatePayment_RejectsBadAmounts(t *testing.T) {
	srv, queries := newTestServer(t)
	jersey := seedProduct(t, queries, "Club Jersey", 4500)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/orders", map[string]any{
		"customer_name": "Ada",
		"email":         "ada@example.com",
		"items":         []map[string]any{{"product_id": jersey.ID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	orderID := decodeBody(t, resp)["order"].(map[string]any)["id"].(string)

	// An amount that disagrees with the stored total never reaches
	// the gateway.
	resp = postJSON(t, srv.Client(), srv.URL+"/api/payments", map[string]any{
		"order_id": orderID,
		"amount":   1,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.Client(), srv.URL+"/api/payments", map[string]any{
		"order_id": orderID,
		"amount":   -500,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRegister_RequiresVerifiedAddress(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/auth/register", map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestAdminGate_RedirectsAnonymous(t *testing.T) {
	srv, _ := newTestServer(t)

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}

	resp, err := client.Get(srv.URL + "/admin/api/dashboard")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestAdminLoginAndDashboard(t *testing.T) {
	srv, queries := newTestServer(t)

	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	now := time.Now().UTC()
	_, err = queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     "chair",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	jar := srv.Client()
	jar.Jar = newCookieJar(t)

	resp := postJSON(t, jar, srv.URL+"/admin/login", map[string]any{
		"username": "chair",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, jar, srv.URL+"/admin/login", map[string]any{
		"username": "chair",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = jar.Get(srv.URL + "/admin/api/dashboard")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "counts")
	require.Contains(t, body, "feed")
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	srv, queries := newTestServer(t)

	jar := adminClient(t, srv, queries)
	resp := uploadFile(t, jar, srv.URL+"/admin/api/uploads", "notes.txt", "text/plain", []byte("hello"))
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestUpload_StoresPDF(t *testing.T) {
	srv, queries := newTestServer(t)

	jar := adminClient(t, srv, queries)
	resp := uploadFile(t, jar, srv.URL+"/admin/api/uploads", "agenda.pdf", "application/pdf", []byte("%PDF-1.4 stub"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Equal(t, "agenda.pdf", body["original_name"])
	name, _ := body["file_name"].(string)
	require.True(t, strings.HasSuffix(name, ".pdf"))
}

func TestUpload_RejectsOversizedBody(t *testing.T) {
	srv, queries := newTestServer(t)

	jar := adminClient(t, srv, queries)
	huge := bytes.Repeat([]byte{'%'}, int(service.MaxUploadBytes)+128<<10)
	resp := uploadFile(t, jar, srv.URL+"/admin/api/uploads", "huge.pdf", "application/pdf", huge)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The transport ceiling trips before the file ever reaches the
	// media service.
	body := decodeBody(t, resp)
	require.Equal(t, "invalid multipart form", body["error"])
}

func TestPublicEvents_EmptyList(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/events")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&events))
	require.Empty(t, events)
}

func TestCreateEnquiry_Validation(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.Client(), srv.URL+"/api/enquiries", map[string]any{
		"email": "ada@example.com",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

// adminClient seeds an admin account and returns a cookie-carrying
// client logged in as it.
func adminClient(t *testing.T, srv *httptest.Server, queries *store.Queries) *http.Client {
	t.Helper()

	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	now := time.Now().UTC()
	_, err = queries.CreateAdmin(context.Background(), store.CreateAdminParams{
		ID:           uuid.NewString(),
		Username:     "chair",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	client := srv.Client()
	client.Jar = newCookieJar(t)
	resp := postJSON(t, client, srv.URL+"/admin/login", map[string]any{
		"username": "chair",
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	return client
}

func newCookieJar(t *testing.T) http.CookieJar {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return jar
}

func uploadFile(t *testing.T, client *http.Client, url, filename, mimeType string, content []byte) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := client.Post(url, mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	return resp
}
