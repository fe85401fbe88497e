// ABOUTME: Tests for the install-skill command.
// ABOUTME: Validates skill installation, confirmation handling, and file content.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedSkill(t *testing.T) {
	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		t.Fatalf("Failed to read embedded skill: %v", err)
	}

	text := string(content)
	if !strings.HasPrefix(text, "---\n") {
		t.Error("SKILL.md should start with front matter")
	}
	for _, want := range []string{"name: forge", "description:", "forge generate", "forge templates list"} {
		if !strings.Contains(text, want) {
			t.Errorf("SKILL.md missing %q", want)
		}
	}
}

func TestInstallSkillWithYes(t *testing.T) {
	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	skillDir := filepath.Join(t.TempDir(), ".claude", "skills", "forge")
	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, skillDir); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	written, err := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		t.Fatalf("Skill file not created: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if !bytes.Equal(written, embedded) {
		t.Error("installed skill differs from embedded copy")
	}

	info, err := os.Stat(filepath.Join(skillDir, "SKILL.md"))
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("file mode = %v, want 0600", info.Mode().Perm())
	}
	if !strings.Contains(out.String(), "Installed forge skill") {
		t.Errorf("output = %q", out.String())
	}
}

func TestInstallSkillConfirmation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		installed bool
	}{
		{"yes", "y\n", true},
		{"full yes", "YES\n", true},
		{"no", "n\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skillDir := filepath.Join(t.TempDir(), "forge")
			var out bytes.Buffer
			if err := installSkill(strings.NewReader(tt.input), &out, skillDir); err != nil {
				t.Fatalf("installSkill failed: %v", err)
			}

			_, err := os.Stat(filepath.Join(skillDir, "SKILL.md"))
			if got := err == nil; got != tt.installed {
				t.Errorf("installed = %v, want %v", got, tt.installed)
			}
			if !tt.installed && !strings.Contains(out.String(), "Installation canceled.") {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestInstallSkillOverwriteNotice(t *testing.T) {
	skillSkipConfirm = true
	defer func() { skillSkipConfirm = false }()

	skillDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(skillDir, "SKILL.md"), []byte("old"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	var out bytes.Buffer
	if err := installSkill(strings.NewReader(""), &out, skillDir); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if !strings.Contains(out.String(), "already exists") {
		t.Errorf("expected overwrite notice, got %q", out.String())
	}
	written, _ := os.ReadFile(filepath.Join(skillDir, "SKILL.md"))
	if string(written) == "old" {
		t.Error("skill file was not overwritten")
	}
}
