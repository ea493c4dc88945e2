package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	claudagent "github.com/hereya/aws-claud-agent"
)

func setSynthEnv(t *testing.T) {
	t.Helper()
	t.Setenv("IMAGE_URI", "ghcr.io/hereya/claud-agent:v1")
	t.Setenv("MEMORY_SIZE", "")
	t.Setenv("TIMEOUT", "")
	t.Setenv("NAME_PREFIX", "")
	t.Setenv("STACK_NAME", "")
	t.Setenv("RETAIN_ON_DELETE", "")
}

func TestSynthesize(t *testing.T) {
	setSynthEnv(t)

	tmpl, err := synthesize("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tmpl.Resources) != 9 {
		t.Errorf("expected 9 resources, got %d", len(tmpl.Resources))
	}
	if _, ok := tmpl.Resources["AgentFunction"]; !ok {
		t.Error("expected AgentFunction resource")
	}
}

func TestSynthesize_MissingImage(t *testing.T) {
	setSynthEnv(t)
	t.Setenv("IMAGE_URI", "")

	_, err := synthesize("")
	if err == nil {
		t.Fatal("expected error for missing IMAGE_URI")
	}
	if !strings.Contains(err.Error(), "IMAGE_URI") {
		t.Errorf("error should name IMAGE_URI, got: %v", err)
	}
}

func TestSynthesize_EnvFileOverrides(t *testing.T) {
	setSynthEnv(t)

	envFile := filepath.Join(t.TempDir(), "stack.env")
	if err := os.WriteFile(envFile, []byte("NAME_PREFIX=acme\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tmpl, err := synthesize(envFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bucket := tmpl.Resources["InputBucket"]
	if bucket.Properties["BucketName"] != "acme-input-claud-agent" {
		t.Errorf("expected env file prefix in bucket name, got %v", bucket.Properties["BucketName"])
	}
}

func TestRenderTemplate(t *testing.T) {
	setSynthEnv(t)

	tmpl, err := synthesize("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	jsonData, err := renderTemplate(tmpl, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(jsonData, &decoded); err != nil {
		t.Fatalf("json output does not parse: %v", err)
	}

	yamlData, err := renderTemplate(tmpl, "yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(yamlData), "AWS::Lambda::Function") {
		t.Error("expected function resource in yaml output")
	}

	if _, err := renderTemplate(tmpl, "toml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunSynth_WritesTemplate(t *testing.T) {
	setSynthEnv(t)

	outputFile := filepath.Join(t.TempDir(), "template.json")
	if err := runSynth("", "json", outputFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output does not parse: %v", err)
	}
	if _, ok := decoded["Resources"].(map[string]any)["AgentFunction"]; !ok {
		t.Error("expected AgentFunction in written template")
	}
}

func TestRunSynth_MissingImage(t *testing.T) {
	setSynthEnv(t)
	t.Setenv("IMAGE_URI", "")

	err := runSynth("", "json", filepath.Join(t.TempDir(), "template.json"))
	if err == nil {
		t.Fatal("expected error for missing IMAGE_URI")
	}
	if err.Error() != "synth failed" {
		t.Errorf("expected synth failed, got: %v", err)
	}
}

func TestOutputSynthResult_Failure(t *testing.T) {
	result := claudagent.SynthResult{
		Success: false,
		Errors:  []string{"missing IMAGE_URI"},
	}
	if err := outputSynthResult(result, "json", ""); err == nil {
		t.Fatal("expected error for failed result")
	}
}
