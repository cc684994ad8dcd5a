package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestPackUnpackRoundTrip(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "channel.raw")
	packed := filepath.Join(dir, "channel.rle")
	restored := filepath.Join(dir, "restored.raw")

	const height, width = 16, 32
	data := make([]byte, height*width)
	for i := range data {
		data[i] = byte(i / width) // constant rows compress well
	}
	if err := os.WriteFile(raw, data, 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "pack", "--height", "16", "--width", "32", raw, packed); err != nil {
		t.Fatalf("pack: %v", err)
	}
	if err := runCommand(t, "unpack", "--height", "16", "--width", "32", packed, restored); err != nil {
		t.Fatalf("unpack: %v", err)
	}

	got, err := os.ReadFile(restored)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Error("round trip through pack/unpack mismatch")
	}

	if err := runCommand(t, "info", "--height", "16", packed); err != nil {
		t.Fatalf("info: %v", err)
	}
}

func TestPackMissingGeometry(t *testing.T) {
	dir := t.TempDir()
	raw := filepath.Join(dir, "x.raw")
	if err := os.WriteFile(raw, []byte{1}, 0644); err != nil {
		t.Fatal(err)
	}

	if err := runCommand(t, "pack", "--height", "0", "--width", "0", raw, raw+".rle"); err == nil {
		t.Error("pack without geometry should fail")
	}
}
