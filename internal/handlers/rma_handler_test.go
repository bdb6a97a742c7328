package handlers_test

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rmadesk/rma-portal/internal/models"
)

func validRmaForm() map[string]string {
	return map[string]string{
		"productCode":        "DRL-500",
		"serialNumber":       "SN-778812",
		"quantity":           "2",
		"invoiceDate":        "2026-05-14",
		"salesDocumentNo":    "SD-2026-081",
		"returnReason":       "Defective",
		"problemDescription": "Chuck does not hold the bit.",
	}
}

func doMultipart(env *testEnv, fields map[string]string, photo []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if photo != nil {
		part, _ := mw.CreateFormFile("photo", "photo.png")
		_, _ = part.Write(photo)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/rma", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, req)
	return recorder
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCreateRma(t *testing.T) {
	env := setupTestEnv(t)
	customer := seedCustomer(t, env.db, "returns@acme.test")
	token := customerToken(t, env, customer.ID)

	t.Run("submits a request and assigns the reference number", func(t *testing.T) {
		recorder := doMultipart(env, validRmaForm(), nil, token)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "PENDING", body["status"])
		assert.Equal(t, "5–7 business days", body["estimatedResolution"])

		var stored models.RmaRequest
		err := env.db.Where("customer_id = ?", customer.ID).First(&stored).Error
		assert.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("RMA-%d-%06d", time.Now().Year(), stored.ID), stored.RmaNumber)
		assert.Equal(t, body["rmaNumber"], stored.RmaNumber)
		assert.Equal(t, "PENDING", stored.Status)
		assert.Equal(t, 2, stored.Quantity)
	})

	t.Run("denormalizes the product name from the catalog", func(t *testing.T) {
		env.db.Create(&models.Product{Code: "SAW-220", Name: "Circular Saw"})

		form := validRmaForm()
		form["productCode"] = "SAW-220"
		form["serialNumber"] = "SN-000991"

		recorder := doMultipart(env, form, nil, token)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var stored models.RmaRequest
		env.db.Where("product_code = ?", "SAW-220").First(&stored)
		assert.Equal(t, "Circular Saw", stored.ProductName)
	})

	t.Run("accepts an unknown product code as-is", func(t *testing.T) {
		form := validRmaForm()
		form["productCode"] = "NOT-IN-CATALOG"
		form["serialNumber"] = "SN-000992"

		recorder := doMultipart(env, form, nil, token)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var stored models.RmaRequest
		env.db.Where("product_code = ?", "NOT-IN-CATALOG").First(&stored)
		assert.Equal(t, "", stored.ProductName)
	})

	t.Run("stores the uploaded photo path", func(t *testing.T) {
		form := validRmaForm()
		form["serialNumber"] = "SN-000993"

		recorder := doMultipart(env, form, tinyPNG(t), token)
		assert.Equal(t, http.StatusCreated, recorder.Code)

		var stored models.RmaRequest
		env.db.Where("serial_number = ?", "SN-000993").First(&stored)
		assert.NotEmpty(t, stored.PhotoPath)
	})

	t.Run("rejects a zero quantity", func(t *testing.T) {
		form := validRmaForm()
		form["quantity"] = "0"

		recorder := doMultipart(env, form, nil, token)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errs := fieldErrors(t, recorder)
		assert.Contains(t, errs, "quantity")
	})

	t.Run("rejects missing fields without persisting anything", func(t *testing.T) {
		var before int64
		env.db.Model(&models.RmaRequest{}).Count(&before)

		recorder := doMultipart(env, map[string]string{"quantity": "1"}, nil, token)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errs := fieldErrors(t, recorder)
		assert.Contains(t, errs, "product_code")
		assert.Contains(t, errs, "serial_number")
		assert.Contains(t, errs, "return_reason")
		assert.Contains(t, errs, "problem_description")
		assert.Contains(t, errs, "invoice_date")

		var after int64
		env.db.Model(&models.RmaRequest{}).Count(&after)
		assert.Equal(t, before, after)
	})

	t.Run("rejects a malformed invoice date", func(t *testing.T) {
		form := validRmaForm()
		form["invoiceDate"] = "14/05/2026"

		recorder := doMultipart(env, form, nil, token)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errs := fieldErrors(t, recorder)
		assert.Contains(t, errs, "invoice_date")
	})

	t.Run("rejects a non-image photo", func(t *testing.T) {
		recorder := doMultipart(env, validRmaForm(), []byte("definitely not pixels"), token)

		assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
		errs := fieldErrors(t, recorder)
		assert.Contains(t, errs, "photo")
	})

	t.Run("requires authentication", func(t *testing.T) {
		recorder := doMultipart(env, validRmaForm(), nil, "")
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})
}

func TestListOwnRmas(t *testing.T) {
	env := setupTestEnv(t)
	alice := seedCustomer(t, env.db, "alice@acme.test")
	bob := seedCustomer(t, env.db, "bob@acme.test")

	seedRma(t, env.db, alice.ID, "PENDING", "Defective")
	seedRma(t, env.db, alice.ID, "APPROVED", "Wrong Item")
	seedRma(t, env.db, bob.ID, "PENDING", "Defective")

	t.Run("a customer sees only their own requests", func(t *testing.T) {
		recorder := doGet(env, "/api/rmas", customerToken(t, env, alice.ID))

		assert.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		data := body["data"].([]interface{})
		assert.Len(t, data, 2)
		for _, item := range data {
			row := item.(map[string]interface{})
			assert.Equal(t, float64(alice.ID), row["customer_id"])
		}

		meta := body["meta"].(map[string]interface{})
		assert.Equal(t, float64(2), meta["total"])
	})

	t.Run("a customer with no requests gets an empty list", func(t *testing.T) {
		carol := seedCustomer(t, env.db, "carol@acme.test")
		recorder := doGet(env, "/api/rmas", customerToken(t, env, carol.ID))

		assert.Equal(t, http.StatusOK, recorder.Code)
		body := decodeBody(t, recorder)
		assert.Len(t, body["data"].([]interface{}), 0)
	})

	t.Run("pagination clamps to the first page on bad input", func(t *testing.T) {
		recorder := doGet(env, "/api/rmas?page=abc&limit=-5", customerToken(t, env, alice.ID))

		assert.Equal(t, http.StatusOK, recorder.Code)
		meta := decodeBody(t, recorder)["meta"].(map[string]interface{})
		assert.Equal(t, float64(1), meta["current_page"])
	})
}
