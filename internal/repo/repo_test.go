package repo

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"abyos-admin/internal/resource"
	"abyos-admin/internal/user"
)

func setupRepoDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&user.User{}, &resource.Resource{}, &resource.UserResource{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedUser(t *testing.T, users *UserRepository, name, email string) user.User {
	u := user.User{Name: name, Email: email, Password: "hash"}
	if err := users.Create(&u); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedResource(t *testing.T, resources *ResourceRepository, name string) resource.Resource {
	res := resource.Resource{Name: name}
	if err := resources.Create(&res); err != nil {
		t.Fatalf("failed to seed resource: %v", err)
	}
	return res
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	users := NewUserRepository(setupRepoDB(t))
	created := seedUser(t, users, "Admin", "admin@abyos.com")
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	found, err := users.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil || found.Email != "admin@abyos.com" || found.Name != "Admin" {
		t.Errorf("round trip mismatch: %+v", found)
	}

	byEmail, err := users.FindByEmail("admin@abyos.com")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != created.ID {
		t.Errorf("expected same user by email")
	}

	missing, err := users.FindByID(9999)
	if err != nil {
		t.Fatalf("FindByID for missing id errored: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	users := NewUserRepository(setupRepoDB(t))
	seedUser(t, users, "A", "dup@abyos.com")

	err := users.Create(&user.User{Name: "B", Email: "dup@abyos.com", Password: "hash"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	other := seedUser(t, users, "C", "other@abyos.com")
	email := "dup@abyos.com"
	_, err = users.Update(other.ID, UpdateUserData{Email: &email})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate on update, got %v", err)
	}
}

func TestUserRepository_UpdatePartial(t *testing.T) {
	users := NewUserRepository(setupRepoDB(t))
	u := seedUser(t, users, "Old", "old@abyos.com")

	name := "New"
	admin := true
	updated, err := users.Update(u.ID, UpdateUserData{Name: &name, Admin: &admin})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "New" || !updated.Admin {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Email != "old@abyos.com" {
		t.Errorf("untouched field changed: %s", updated.Email)
	}

	_, err = users.Update(9999, UpdateUserData{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DeleteMissingIsFalse(t *testing.T) {
	users := NewUserRepository(setupRepoDB(t))
	u := seedUser(t, users, "Gone", "gone@abyos.com")

	ok, err := users.Delete(u.ID)
	if err != nil || !ok {
		t.Fatalf("expected delete true, got %v %v", ok, err)
	}
	ok, err = users.Delete(u.ID)
	if err != nil {
		t.Fatalf("delete of missing id should not error: %v", err)
	}
	if ok {
		t.Errorf("expected false for missing id")
	}
}

func TestUserRepository_ListClampAndFilter(t *testing.T) {
	users := NewUserRepository(setupRepoDB(t))
	for i := 0; i < 120; i++ {
		seedUser(t, users, fmt.Sprintf("user%03d", i), fmt.Sprintf("user%03d@abyos.com", i))
	}

	got, err := users.List(ListParams{Take: 500})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("take=500 should clamp to 100, got %d", len(got))
	}

	got, err = users.List(ListParams{Take: 0})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("take=0 should clamp to 1, got %d", len(got))
	}

	got, err = users.List(ListParams{Take: -5, Skip: -3})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("negative take should clamp to 1, got %d", len(got))
	}

	got, err = users.List(DefaultListParams())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 25 {
		t.Errorf("default take should be 25, got %d", len(got))
	}

	// Case-insensitive substring filter against name and email.
	got, err = users.List(ListParams{Take: 50, Query: "USER11"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 filtered users, got %d", len(got))
	}

	got, err = users.List(ListParams{Take: 25, Skip: 110})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 10 {
		t.Errorf("expected 10 users after skip, got %d", len(got))
	}
}

func TestResourceRepository_CRUD(t *testing.T) {
	conn := setupRepoDB(t)
	resources := NewResourceRepository(conn)

	res := seedResource(t, resources, "Printer")
	err := resources.Create(&resource.Resource{Name: "Printer"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	byName, err := resources.FindByName("Printer")
	if err != nil || byName == nil || byName.ID != res.ID {
		t.Errorf("FindByName mismatch: %+v %v", byName, err)
	}

	name := "Scanner"
	updated, err := resources.Update(res.ID, UpdateResourceData{Name: &name})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Scanner" {
		t.Errorf("name not updated: %+v", updated)
	}

	_, err = resources.Update(9999, UpdateResourceData{Name: &name})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	ok, err := resources.Delete(res.ID)
	if err != nil || !ok {
		t.Fatalf("expected delete true, got %v %v", ok, err)
	}
	ok, err = resources.Delete(res.ID)
	if err != nil || ok {
		t.Errorf("expected false for missing id, got %v %v", ok, err)
	}
}

func TestResourceRepository_Assignments(t *testing.T) {
	conn := setupRepoDB(t)
	users := NewUserRepository(conn)
	resources := NewResourceRepository(conn)

	u := seedUser(t, users, "Worker", "worker@abyos.com")
	res := seedResource(t, resources, "Forklift")

	if err := resources.AssignUser(res.ID, u.ID); err != nil {
		t.Fatalf("AssignUser failed: %v", err)
	}

	// Duplicate pair is rejected.
	err := resources.AssignUser(res.ID, u.ID)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}

	// Either side missing fails RelatedNotFound.
	err = resources.AssignUser(res.ID, 999)
	if !errors.Is(err, ErrRelatedNotFound) {
		t.Errorf("expected ErrRelatedNotFound for missing user, got %v", err)
	}
	err = resources.AssignUser(999, u.ID)
	if !errors.Is(err, ErrRelatedNotFound) {
		t.Errorf("expected ErrRelatedNotFound for missing resource, got %v", err)
	}

	assigned, err := resources.ListUsers(res.ID)
	if err != nil || len(assigned) != 1 || assigned[0].ID != u.ID {
		t.Errorf("ListUsers mismatch: %+v %v", assigned, err)
	}
	forUser, err := resources.ListForUser(u.ID)
	if err != nil || len(forUser) != 1 || forUser[0].ID != res.ID {
		t.Errorf("ListForUser mismatch: %+v %v", forUser, err)
	}

	ok, err := resources.UnassignUser(res.ID, u.ID)
	if err != nil || !ok {
		t.Fatalf("expected unassign true, got %v %v", ok, err)
	}
	ok, err = resources.UnassignUser(res.ID, u.ID)
	if err != nil || ok {
		t.Errorf("expected false for already removed pair, got %v %v", ok, err)
	}
}
