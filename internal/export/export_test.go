package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/capops/quotanorm/internal/pipeline"
)

func sampleResult() *pipeline.Result {
	rows := []pipeline.Row{
		{
			SubscriptionID: "sub-1",
			RequestType:    "Quota Increase",
			VMType:         "Standard_D2",
			Region:         "East US",
			Zone:           "Zone 1",
			Cores:          "32",
			Status:         "Approved",
			OriginalID:     "101",
		},
		{
			SubscriptionID: "sub-2",
			RequestType:    "Reserved Instances",
			VMType:         "Standard_E4",
			Region:         "West US",
			Zone:           "N/A",
			Cores:          "16",
			Status:         "Fulfilled",
			OriginalID:     "102",
		},
	}
	return &pipeline.Result{
		Rows: rows,
		Groups: map[string][]pipeline.Row{
			"Quota Increase":     {rows[0]},
			"Reserved Instances": {rows[1]},
		},
		GroupOrder: []string{"Quota Increase", "Reserved Instances"},
	}
}

func TestHeaders(t *testing.T) {
	want := []string{
		"Subscription ID", "Request Type", "VM Type",
		"Region", "Zone", "Cores", "Status",
	}
	if diff := cmp.Diff(want, Headers(false)); diff != "" {
		t.Errorf("Headers(false) mismatch (-want +got):\n%s", diff)
	}

	wantRD := append([]string{"RDQuota"}, want...)
	if diff := cmp.Diff(wantRD, Headers(true)); diff != "" {
		t.Errorf("Headers(true) mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleResult(), false); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "Subscription ID,Request Type,VM Type,Region,Zone,Cores,Status\n" +
		"sub-1,Quota Increase,Standard_D2,East US,Zone 1,32,Approved\n" +
		"sub-2,Reserved Instances,Standard_E4,West US,N/A,16,Fulfilled\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteCSV output:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteTSV_WithRDQuota(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTSV(&buf, sampleResult(), true); err != nil {
		t.Fatalf("WriteTSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "RDQuota\tSubscription ID") {
		t.Errorf("header = %q, want RDQuota prepended", lines[0])
	}
	if !strings.HasPrefix(lines[1], "101\tsub-1") {
		t.Errorf("row = %q, want original id first", lines[1])
	}
}

func TestWriteGrouped(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGrouped(&buf, sampleResult(), ',', false); err != nil {
		t.Fatalf("WriteGrouped() error = %v", err)
	}

	out := buf.String()
	qi := strings.Index(out, "## Quota Increase")
	ri := strings.Index(out, "## Reserved Instances")
	if qi == -1 || ri == -1 {
		t.Fatalf("missing group headings in output:\n%s", out)
	}
	if qi > ri {
		t.Error("groups emitted out of first-encounter order")
	}
	if got := strings.Count(out, "Subscription ID,"); got != 2 {
		t.Errorf("each group should repeat the header, found %d headers", got)
	}
	if !strings.Contains(out, "sub-2,Reserved Instances") {
		t.Errorf("missing grouped row in output:\n%s", out)
	}
}
