package predictor

import "testing"

func TestParseClassID(t *testing.T) {
	tests := []struct {
		label   string
		want    int
		wantErr bool
	}{
		{label: "LABEL_0", want: 0},
		{label: "LABEL_19", want: 19},
		{label: "emoji_class_7", want: 7},
		{label: "LABEL_", wantErr: true},
		{label: "LABEL_x", wantErr: true},
		{label: "noscore", wantErr: true},
		{label: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseClassID(tt.label)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClassID(%q) error = %v, wantErr %v", tt.label, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseClassID(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}
