package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"abyos-admin/internal/resource"
)

func TestResourceCreate_AndDuplicate(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.seedUser(t, "Admin", "admin@abyos.com", "admin-password", true)
	cookie := env.sessionCookie(t, admin)

	w := env.do(t, "POST", "/api/resource/create", map[string]interface{}{
		"name": "Printer",
		"meta": map[string]string{"location": "floor-2"},
	}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	res := decodeEnvelope(t, w)
	if message(res) != "Resource created" {
		t.Errorf("unexpected message: %s", w.Body.String())
	}
	var created resource.Resource
	if err := json.Unmarshal(res.Data, &created); err != nil {
		t.Fatalf("failed to decode resource: %v", err)
	}
	if created.ID == 0 || created.Name != "Printer" {
		t.Errorf("unexpected resource: %+v", created)
	}
	if !strings.Contains(string(created.Meta), "floor-2") {
		t.Errorf("meta not persisted: %s", created.Meta)
	}

	w = env.do(t, "POST", "/api/resource/create", map[string]interface{}{"name": "Printer"}, cookie)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(message(decodeEnvelope(t, w)), "already exists") {
		t.Errorf("expected already-exists message: %s", w.Body.String())
	}
}

func TestResourceList_Filter(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.seedUser(t, "Admin", "admin@abyos.com", "admin-password", true)
	env.seedResource(t, "Printer")
	env.seedResource(t, "Scanner")
	env.seedResource(t, "Label Printer")
	cookie := env.sessionCookie(t, admin)

	w := env.do(t, "GET", "/api/resource/list?q=printer", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var list []resource.Resource
	json.Unmarshal(decodeEnvelope(t, w).Data, &list)
	if len(list) != 2 {
		t.Errorf("expected 2 matches, got %d", len(list))
	}
}

func TestResourceGetPatchDelete(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.seedUser(t, "Admin", "admin@abyos.com", "admin-password", true)
	res := env.seedResource(t, "Forklift")
	cookie := env.sessionCookie(t, admin)
	path := fmt.Sprintf("/api/resource/%d", res.ID)

	w := env.do(t, "GET", path, nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "PATCH", path, map[string]interface{}{}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty patch, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "PATCH", path, map[string]interface{}{"name": "Pallet Jack"}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if message(decodeEnvelope(t, w)) != "Resource updated" {
		t.Errorf("unexpected envelope: %s", w.Body.String())
	}

	w = env.do(t, "DELETE", path, nil, cookie)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, "DELETE", path, nil, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing resource, got %d: %s", w.Code, w.Body.String())
	}

	w = env.do(t, "PATCH", path, map[string]interface{}{"name": "Ghost"}, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for patching missing resource, got %d: %s", w.Code, w.Body.String())
	}
}

func TestResourceAssign(t *testing.T) {
	env := setupTestEnv(t)
	admin := env.seedUser(t, "Admin", "admin@abyos.com", "admin-password", true)
	worker := env.seedUser(t, "Worker", "worker@abyos.com", "worker-password", false)
	res := env.seedResource(t, "Forklift")
	cookie := env.sessionCookie(t, admin)
	path := fmt.Sprintf("/api/resource/%d/assign", res.ID)

	// Missing user maps to 404 with the combined message.
	w := env.do(t, "POST", path, AssignRequest{ResourceID: res.ID, UserID: 999}, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}
	if message(decodeEnvelope(t, w)) != "User or Resource not found" {
		t.Errorf("unexpected envelope: %s", w.Body.String())
	}

	w = env.do(t, "POST", path, AssignRequest{ResourceID: res.ID, UserID: worker.ID}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate pair is a conflict.
	w = env.do(t, "POST", path, AssignRequest{ResourceID: res.ID, UserID: worker.ID}, cookie)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", w.Code, w.Body.String())
	}
	if message(decodeEnvelope(t, w)) != "User is already assigned to this resource" {
		t.Errorf("unexpected envelope: %s", w.Body.String())
	}

	// Assigned users are listed, passwords stripped.
	w = env.do(t, "GET", fmt.Sprintf("/api/resource/%d/users", res.ID), nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "worker@abyos.com") {
		t.Errorf("expected assigned user in list: %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "$2") {
		t.Errorf("password hash leaked: %s", w.Body.String())
	}

	// Unassign removes the pair once.
	w = env.do(t, "DELETE", path, AssignRequest{ResourceID: res.ID, UserID: worker.ID}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, "DELETE", path, AssignRequest{ResourceID: res.ID, UserID: worker.ID}, cookie)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for removed pair, got %d: %s", w.Code, w.Body.String())
	}
}

func TestResourceRoutes_AdminGate(t *testing.T) {
	env := setupTestEnv(t)
	nonAdmin := env.seedUser(t, "User", "user@abyos.com", "some-password", false)

	w := env.do(t, "GET", "/api/resource/list", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	w = env.do(t, "GET", "/api/resource/list", nil, env.sessionCookie(t, nonAdmin))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}
