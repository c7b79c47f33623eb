package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSettingRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Unset key reads as empty
	val, err := store.Setting("missing")
	if err != nil {
		t.Fatalf("Setting() failed: %v", err)
	}
	if val != "" {
		t.Errorf("Unset key should read as empty, got %q", val)
	}

	if err := store.SetSetting("key", "value1"); err != nil {
		t.Fatalf("SetSetting() failed: %v", err)
	}

	val, err = store.Setting("key")
	if err != nil {
		t.Fatalf("Setting() failed: %v", err)
	}
	if val != "value1" {
		t.Errorf("Setting() = %q, expected \"value1\"", val)
	}

	// Overwrite
	if err := store.SetSetting("key", "value2"); err != nil {
		t.Fatalf("SetSetting() overwrite failed: %v", err)
	}
	val, _ = store.Setting("key")
	if val != "value2" {
		t.Errorf("Setting() after overwrite = %q, expected \"value2\"", val)
	}
}

func TestStoreDeleteSetting(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SetSetting("key", "value")

	if err := store.DeleteSetting("key"); err != nil {
		t.Fatalf("DeleteSetting() failed: %v", err)
	}

	val, _ := store.Setting("key")
	if val != "" {
		t.Errorf("Deleted key should read as empty, got %q", val)
	}

	// Deleting a missing key is not an error
	if err := store.DeleteSetting("missing"); err != nil {
		t.Errorf("DeleteSetting() on missing key failed: %v", err)
	}
}

func TestStoreTypedAccessors(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.SetAuthToken("tok-123"); err != nil {
		t.Fatalf("SetAuthToken() failed: %v", err)
	}
	if err := store.SetAPIURL("https://api.example.com"); err != nil {
		t.Fatalf("SetAPIURL() failed: %v", err)
	}
	if err := store.SetGesture("33"); err != nil {
		t.Fatalf("SetGesture() failed: %v", err)
	}

	token, _ := store.AuthToken()
	if token != "tok-123" {
		t.Errorf("AuthToken() = %q, expected \"tok-123\"", token)
	}

	url, _ := store.APIURL()
	if url != "https://api.example.com" {
		t.Errorf("APIURL() = %q", url)
	}

	gesture, _ := store.Gesture()
	if gesture != "33" {
		t.Errorf("Gesture() = %q, expected \"33\"", gesture)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SetAuthToken("persisted")
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	token, err := reopened.AuthToken()
	if err != nil {
		t.Fatalf("AuthToken() after reopen failed: %v", err)
	}
	if token != "persisted" {
		t.Errorf("Token should survive reopen, got %q", token)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
