package commands

import "testing"

func TestVersionCmdHasCheckFlag(t *testing.T) {
	cmd := versionCmd()
	f := cmd.Flags().Lookup("check")
	if f == nil || f.DefValue != "false" {
		t.Fatalf("expected a --check flag defaulting to false, got %+v", f)
	}
}

func TestVersionCmdRunsWithoutCheck(t *testing.T) {
	cmd := versionCmd()
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("versionCmd RunE() error = %v", err)
	}
}
