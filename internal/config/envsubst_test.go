package config

import (
	"testing"
)

func TestSubstituteEnvVars_Simple(t *testing.T) {
	t.Setenv("TEST_VAR_SIMPLE", "hello")

	content, missing := substituteEnvVars("value = ${TEST_VAR_SIMPLE}")
	if content != "value = hello" {
		t.Errorf("expected 'value = hello', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_Missing(t *testing.T) {
	content, missing := substituteEnvVars("a = ${SERIESMATCH_TEST_NONEXISTENT_1}\nb = ${SERIESMATCH_TEST_NONEXISTENT_1}")
	if content != "a = ${SERIESMATCH_TEST_NONEXISTENT_1}\nb = ${SERIESMATCH_TEST_NONEXISTENT_1}" {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 1 || missing[0] != "SERIESMATCH_TEST_NONEXISTENT_1" {
		t.Errorf("expected one missing var, got %v", missing)
	}
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	t.Setenv("UNSET_VAR_DEFAULT", "")

	content, missing := substituteEnvVars("value = ${UNSET_VAR_DEFAULT:-default_value}")
	if content != "value = default_value" {
		t.Errorf("expected 'value = default_value', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars with default, got %v", missing)
	}
}

func TestSubstituteEnvVars_DefaultOverriddenByEnv(t *testing.T) {
	t.Setenv("SET_VAR_OVERRIDE", "from_env")

	content, _ := substituteEnvVars("value = ${SET_VAR_OVERRIDE:-default}")
	if content != "value = from_env" {
		t.Errorf("expected 'value = from_env', got %q", content)
	}
}

func TestSubstituteEnvVars_EmptyWithoutDefault(t *testing.T) {
	t.Setenv("SET_BUT_EMPTY", "")

	content, missing := substituteEnvVars("value = '${SET_BUT_EMPTY}'")
	if content != "value = ''" {
		t.Errorf("expected empty substitution, got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("set variables are not missing, got %v", missing)
	}
}
