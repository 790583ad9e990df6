package pipeline

import "testing"

func TestHeaderIndex(t *testing.T) {
	idx := NewHeaderIndex([]string{"ID", "Region", "ID", "Status"})

	if got := idx["ID"]; got != 0 {
		t.Errorf("duplicate header should keep first index, got %d", got)
	}
	if !idx.Has("Status") {
		t.Error("Has(Status) = false, want true")
	}
	if idx.Has("Missing") {
		t.Error("Has(Missing) = true, want false")
	}
	if !idx.HasAll([]string{"ID", "Region", "Status"}) {
		t.Error("HasAll should report true when every name is present")
	}
	if idx.HasAll([]string{"ID", "Zone"}) {
		t.Error("HasAll should report false when any name is absent")
	}
}

func TestHeaderIndexField(t *testing.T) {
	idx := NewHeaderIndex([]string{"ID", "Region", "Status"})
	row := []string{"1", "East US"}

	if got := idx.Field(row, "Region"); got != "East US" {
		t.Errorf("Field(Region) = %q, want %q", got, "East US")
	}
	if got := idx.Field(row, "Status"); got != "" {
		t.Errorf("Field past row length = %q, want empty", got)
	}
	if got := idx.Field(row, "Zone"); got != "" {
		t.Errorf("Field of unknown column = %q, want empty", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   InputShape
	}{
		{
			name: "all seven canonical columns",
			header: []string{
				"Subscription ID", "Request Type", "VM Type",
				"Region", "Zone", "Cores", "Status",
			},
			want: ShapePreNormalized,
		},
		{
			name: "canonical columns with extras",
			header: []string{
				"Extra", "Subscription ID", "Request Type", "VM Type",
				"Region", "Zone", "Cores", "Status", "Notes",
			},
			want: ShapePreNormalized,
		},
		{
			name: "one canonical column missing",
			header: []string{
				"Subscription ID", "Request Type", "VM Type",
				"Region", "Zone", "Cores",
			},
			want: ShapeRaw,
		},
		{
			name:   "raw ticketing header",
			header: []string{"ID", "UTC Ticket", "Reason", "SKU"},
			want:   ShapeRaw,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(NewHeaderIndex(tt.header))
			if got != tt.want {
				t.Errorf("Classify() = %v, want %v", got, tt.want)
			}
		})
	}
}
