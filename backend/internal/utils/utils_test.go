package utils_test

import (
	"os"
	"testing"
	"time"

	"github.com/xyppyx/DoNext/backend/internal/utils"
)

func TestGetEnv_ExistingVariable(t *testing.T) {
	key := "TEST_ENV_VAR"
	expectedValue := "test_value"

	os.Setenv(key, expectedValue)
	defer os.Unsetenv(key)

	result := utils.GetEnv(key, "default")
	if result != expectedValue {
		t.Errorf("Expected %s, got %s", expectedValue, result)
	}
}

func TestGetEnv_NonExistingVariable(t *testing.T) {
	key := "NON_EXISTING_ENV_VAR"
	defaultValue := "default_value"

	os.Unsetenv(key)

	result := utils.GetEnv(key, defaultValue)
	if result != defaultValue {
		t.Errorf("Expected %s, got %s", defaultValue, result)
	}
}

func TestGetEnvAsInt_ValidInteger(t *testing.T) {
	key := "TEST_INT_VAR"
	expectedValue := 42

	os.Setenv(key, "42")
	defer os.Unsetenv(key)

	result := utils.GetEnvAsInt(key, 0)
	if result != expectedValue {
		t.Errorf("Expected %d, got %d", expectedValue, result)
	}
}

func TestGetEnvAsInt_InvalidInteger(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "not-a-number")
	defer os.Unsetenv(key)

	result := utils.GetEnvAsInt(key, 7)
	if result != 7 {
		t.Errorf("Expected fallback 7, got %d", result)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	defer os.Unsetenv(key)

	if !utils.GetEnvAsBool(key, false) {
		t.Error("Expected true for 'true'")
	}

	os.Setenv(key, "garbage")
	if utils.GetEnvAsBool(key, false) {
		t.Error("Expected fallback false for unparseable value")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	os.Setenv(key, "30s")
	defer os.Unsetenv(key)

	result := utils.GetEnvAsDuration(key, time.Minute)
	if result != 30*time.Second {
		t.Errorf("Expected 30s, got %v", result)
	}

	os.Unsetenv(key)
	result = utils.GetEnvAsDuration(key, time.Minute)
	if result != time.Minute {
		t.Errorf("Expected fallback 1m, got %v", result)
	}
}
