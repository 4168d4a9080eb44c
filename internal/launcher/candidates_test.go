package launcher

import (
	"slices"
	"testing"
)

func TestCandidatesOverrideComesFirst(t *testing.T) {
	t.Setenv(EnvOverride, "/opt/python/bin/python3.13")

	got := Candidates([]string{"python3.12"})
	want := []string{"/opt/python/bin/python3.13", "python3.12", "python3", "python"}
	if !slices.Equal(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}

func TestCandidatesIgnoresBlankOverride(t *testing.T) {
	t.Setenv(EnvOverride, "   ")

	got := Candidates(nil)
	want := []string{"python3", "python"}
	if !slices.Equal(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}

func TestCandidatesDeduplicates(t *testing.T) {
	t.Setenv(EnvOverride, "python3")

	got := Candidates([]string{"python3", "python"})
	want := []string{"python3", "python"}
	if !slices.Equal(got, want) {
		t.Fatalf("Candidates = %v, want %v", got, want)
	}
}
