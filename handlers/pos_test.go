package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dinepos-backend/models"
	"dinepos-backend/realtime"

	"github.com/google/uuid"
)

func TestGetTableCartEmpty(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", nil, fx.Token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	items, ok := resp["items"].([]interface{})
	if !ok || len(items) != 0 {
		t.Errorf("expected empty items, got %v", resp["items"])
	}
}

func TestUpdateTableCartReplacesItems(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": fx.Burger.ID, "quantity": 2},
		},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", body, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// Replacing with a different item drops the first one.
	body = map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": fx.Fries.ID, "quantity": 1},
		},
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", body, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.TableCartItem{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 cart item after replace, got %d", count)
	}
}

func TestUpdateTableCartUnknownMenuItem(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": uuid.New(), "quantity": 1},
		},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", body, fx.Token))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

// issueKOT fills the cart and issues a KOT, failing the test on any error.
func issueKOT(t *testing.T, router http.Handler, fx posFixture, items []map[string]interface{}) map[string]interface{} {
	t.Helper()

	cartBody := map[string]interface{}{"items": items}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", cartBody, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("cart update failed: %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/kot", nil, fx.Token))
	if w.Code != http.StatusCreated {
		t.Fatalf("KOT failed: %d: %s", w.Code, w.Body.String())
	}
	return parseResponse(w)
}

func TestIssueKOTEmptyCart(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/kot", nil, fx.Token))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["error"] != "Cart is empty" {
		t.Errorf("unexpected error message: %s", w.Body.String())
	}
}

func TestIssueKOTOccupiesTableAndCreatesBatch(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	resp := issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 2},
	})

	order := resp["order"].(map[string]interface{})
	if order["token_number"].(float64) != 1 {
		t.Errorf("expected token 1 for first order of the day, got %v", order["token_number"])
	}
	if order["subtotal"].(float64) != 20.00 {
		t.Errorf("expected subtotal 20.00, got %v", order["subtotal"])
	}

	var table models.Table
	db.Where("id = ?", fx.Table.ID).First(&table)
	if table.Status != models.TableOccupied {
		t.Errorf("expected table occupied after KOT, got %s", table.Status)
	}
	if table.CurrentOrderID == nil {
		t.Error("expected current_order_id set after KOT")
	}

	var batches []models.TableBatch
	db.Where("table_id = ?", fx.Table.ID).Find(&batches)
	if len(batches) != 1 {
		t.Fatalf("expected 1 batch, got %d", len(batches))
	}
	if batches[0].State != models.BatchSent {
		t.Errorf("expected batch state sent, got %s", batches[0].State)
	}
	if batches[0].TotalAmount != 20.00 {
		t.Errorf("expected batch total 20.00, got %v", batches[0].TotalAmount)
	}

	// Issuing the KOT clears the cart items.
	var cartItems int64
	db.Model(&models.TableCartItem{}).Count(&cartItems)
	if cartItems != 0 {
		t.Errorf("expected cart cleared after KOT, found %d items", cartItems)
	}
}

func TestSecondKOTGetsNextToken(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})
	resp := issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Fries.ID, "quantity": 1},
	})

	order := resp["order"].(map[string]interface{})
	if order["token_number"].(float64) != 2 {
		t.Errorf("expected token 2 for second order, got %v", order["token_number"])
	}

	var batches []models.TableBatch
	db.Where("table_id = ? AND state = ?", fx.Table.ID, models.BatchSent).Find(&batches)
	if len(batches) != 2 {
		t.Errorf("expected 2 open batches, got %d", len(batches))
	}
}

func TestTakeawayKOTRequiresCustomerName(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	cartBody := map[string]interface{}{
		"order_type": "takeaway",
		"items": []map[string]interface{}{
			{"menu_item_id": fx.Burger.ID, "quantity": 1},
		},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", cartBody, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("cart update failed: %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/kot", nil, fx.Token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for takeaway without customer name, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateBatchItemRecomputesTotal(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 2},
		{"menu_item_id": fx.Fries.ID, "quantity": 1},
	})

	var batch models.TableBatch
	db.Where("table_id = ?", fx.Table.ID).First(&batch)

	// burger 10.00 x 3 + fries 4.00 x 1 = 34.00
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT",
		"/api/pos/tables/"+fx.Table.ID.String()+"/batches/"+batch.ID.String()+"/items/"+fx.Burger.ID.String(),
		map[string]interface{}{"quantity": 3}, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	db.Where("id = ?", batch.ID).First(&batch)
	if batch.TotalAmount != 34.00 {
		t.Errorf("expected recomputed total 34.00, got %v", batch.TotalAmount)
	}
}

func TestDeleteLastBatchItemRemovesBatch(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})

	var batch models.TableBatch
	db.Where("table_id = ?", fx.Table.ID).First(&batch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE",
		"/api/pos/tables/"+fx.Table.ID.String()+"/batches/"+batch.ID.String()+"/items/"+fx.Burger.ID.String(), nil, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["message"] != "Batch removed" {
		t.Errorf("unexpected response: %s", w.Body.String())
	}

	var count int64
	db.Model(&models.TableBatch{}).Where("table_id = ?", fx.Table.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected batch removed, found %d", count)
	}
}

func TestDeleteBatchItemKeepsOthers(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
		{"menu_item_id": fx.Fries.ID, "quantity": 2},
	})

	var batch models.TableBatch
	db.Where("table_id = ?", fx.Table.ID).First(&batch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("DELETE",
		"/api/pos/tables/"+fx.Table.ID.String()+"/batches/"+batch.ID.String()+"/items/"+fx.Burger.ID.String(), nil, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	db.Where("id = ?", batch.ID).First(&batch)
	if batch.TotalAmount != 8.00 {
		t.Errorf("expected total 8.00 after removing burger, got %v", batch.TotalAmount)
	}
}

func TestSettleTableClearsLedgerAndFreesTable(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})
	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Fries.ID, "quantity": 1},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/settle",
		map[string]interface{}{"payment_method": "card"}, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["settled"].(float64) != 2 {
		t.Errorf("expected 2 settled batches, got %s", w.Body.String())
	}

	var open int64
	db.Model(&models.TableBatch{}).Where("table_id = ? AND state = ?", fx.Table.ID, models.BatchSent).Count(&open)
	if open != 0 {
		t.Errorf("expected no open batches after settle, found %d", open)
	}

	var orders []models.Order
	db.Find(&orders)
	for _, o := range orders {
		if o.PaymentStatus != models.PaymentPaid {
			t.Errorf("order %s not paid after settle: %s", o.OrderNumber, o.PaymentStatus)
		}
		if o.PaymentMethod != "card" {
			t.Errorf("order %s expected method card, got %s", o.OrderNumber, o.PaymentMethod)
		}
	}

	var table models.Table
	db.Where("id = ?", fx.Table.ID).First(&table)
	if table.Status != models.TableAvailable {
		t.Errorf("expected table available after settle, got %s", table.Status)
	}
	if table.CurrentOrderID != nil {
		t.Error("expected current_order_id cleared after settle")
	}

	var carts int64
	db.Model(&models.TableCart{}).Where("table_id = ?", fx.Table.ID).Count(&carts)
	if carts != 0 {
		t.Errorf("expected cart deleted after settle, found %d", carts)
	}
}

func TestSettleTableNoBatches(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/settle", nil, fx.Token))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSettleTablePartialFailureLeavesLedgerIntact(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	first := issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})
	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Fries.ID, "quantity": 1},
	})

	// Hard-delete the first order so its batch cannot settle.
	firstOrderID := first["order"].(map[string]interface{})["id"].(string)
	db.Exec("DELETE FROM orders WHERE id = ?", firstOrderID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/settle", nil, fx.Token))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}
	if parseResponse(w)["error"] != "Failed to settle 1/2 batches" {
		t.Errorf("unexpected error message: %s", w.Body.String())
	}

	// The ledger and table state are untouched on failure.
	var open int64
	db.Model(&models.TableBatch{}).Where("table_id = ? AND state = ?", fx.Table.ID, models.BatchSent).Count(&open)
	if open != 2 {
		t.Errorf("expected both batches still open, found %d", open)
	}

	var table models.Table
	db.Where("id = ?", fx.Table.ID).First(&table)
	if table.Status != models.TableOccupied {
		t.Errorf("expected table still occupied, got %s", table.Status)
	}
}

func TestGetBatchesExcludesSettledByDefault(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/settle", nil, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("settle failed: %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/pos/tables/"+fx.Table.ID.String()+"/batches", nil, fx.Token))
	if len(parseResponseArray(w)) != 0 {
		t.Errorf("expected no open batches, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/pos/tables/"+fx.Table.ID.String()+"/batches?include_settled=true", nil, fx.Token))
	if len(parseResponseArray(w)) != 1 {
		t.Errorf("expected settled batch in history, got %s", w.Body.String())
	}
}

func TestUpdateSettledBatchRejected(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	issueKOT(t, router, fx, []map[string]interface{}{
		{"menu_item_id": fx.Burger.ID, "quantity": 1},
	})

	var batch models.TableBatch
	db.Where("table_id = ?", fx.Table.ID).First(&batch)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/settle", nil, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("settle failed: %d: %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT",
		"/api/pos/tables/"+fx.Table.ID.String()+"/batches/"+batch.ID.String()+"/items/"+fx.Burger.ID.String(),
		map[string]interface{}{"quantity": 5}, fx.Token))
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 editing settled batch, got %d: %s", w.Code, w.Body.String())
	}
}

func TestIssueKOTFailureLeavesTableAndCartUntouched(t *testing.T) {
	db := freshDB()
	fx := seedPOSContext(db)
	router := setupPOSRouter(db, realtime.NewHub())

	body := map[string]interface{}{
		"items": []map[string]interface{}{
			{"menu_item_id": fx.Burger.ID, "quantity": 2},
		},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/pos/tables/"+fx.Table.ID.String()+"/cart", body, fx.Token))
	if w.Code != http.StatusOK {
		t.Fatalf("cart update failed: %d: %s", w.Code, w.Body.String())
	}

	// Break the batch insert so the KOT fails after the order write.
	if err := db.Exec(`ALTER TABLE "table_batches" RENAME TO "table_batches_hidden"`).Error; err != nil {
		t.Fatal(err)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/kot", nil, fx.Token))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", w.Code, w.Body.String())
	}

	if err := db.Exec(`ALTER TABLE "table_batches_hidden" RENAME TO "table_batches"`).Error; err != nil {
		t.Fatal(err)
	}

	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 0 {
		t.Errorf("expected no orders after failed KOT, got %d", orders)
	}

	var table models.Table
	db.Where("id = ?", fx.Table.ID).First(&table)
	if table.Status != models.TableAvailable {
		t.Errorf("expected table to stay available, got %s", table.Status)
	}
	if table.CurrentOrderID != nil {
		t.Error("expected no current order on the table")
	}

	var cartItems int64
	db.Model(&models.TableCartItem{}).Count(&cartItems)
	if cartItems != 1 {
		t.Errorf("expected cart items to survive the failure, got %d", cartItems)
	}

	// Retry succeeds and the token counter starts fresh.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/pos/tables/"+fx.Table.ID.String()+"/kot", nil, fx.Token))
	if w.Code != http.StatusCreated {
		t.Fatalf("retry failed: %d: %s", w.Code, w.Body.String())
	}
	order := parseResponse(w)["order"].(map[string]interface{})
	if order["token_number"].(float64) != 1 {
		t.Errorf("expected token 1 on retry, got %v", order["token_number"])
	}
}
