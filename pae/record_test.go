package pae

import (
	"errors"
	"testing"
)

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Record
	}{
		{
			name:  "json",
			input: `{"clef": "G-2", "keysig": "xF", "timesig": "4/4", "data": "4C", "other": 3}`,
			want:  Record{KeyClef: "G-2", KeyKeySig: "xF", KeyTimeSig: "4/4", KeyData: "4C"},
		},
		{
			name:  "at lines",
			input: "@clef:G-2\n@keysig: xF\n@ timesig : 4/4\n@data:4C/\n",
			want:  Record{KeyClef: "G-2", KeyKeySig: "xF", KeyTimeSig: "4/4", KeyData: "4C/"},
		},
		{
			name:  "end stops reading",
			input: "@data:4C\n@end\n@data:8D",
			want:  Record{KeyData: "4C"},
		},
		{
			name:  "unknown rows",
			input: "@composer:Anon\n@data:4C",
			want:  Record{KeyData: "4C"},
		},
		{
			name:  "empty data",
			input: "@data:",
			want:  Record{KeyData: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s: got %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestParseRecordErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", ErrEmptyInput},
		{`{"data": 4}`, ErrInvalidRecord},
		{`{"data": `, ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseRecord(tt.input)
			if !errors.Is(err, tt.err) {
				t.Errorf("got %v, want %v", err, tt.err)
			}
		})
	}
}

func TestParseRecordYAML(t *testing.T) {
	rec, err := ParseRecordYAML([]byte("clef: C+3\nkey: 000.100.200\ndata: \"'4C8D/\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if rec[KeyClef] != "C+3" || rec[KeyKey] != "000.100.200" || rec[KeyData] != "'4C8D/" {
		t.Errorf("got %v", rec)
	}
	if !rec.IsMensural() {
		t.Errorf("C+3 clef is not mensural")
	}
	if _, ok := rec[KeyKeySig]; ok {
		t.Errorf("got a keysig that was not given")
	}

	if _, err := ParseRecordYAML([]byte("data: [")); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("got %v, want ErrInvalidRecord", err)
	}
	if _, err := ParseRecordYAML([]byte("  \n")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestReadRecord(t *testing.T) {
	tests := []struct {
		name    string
		content string
		data    string
	}{
		{"raw.pae", "4C2D/\n", "4C2D/"},
		{"at.pae", "@clef:G-2\n@data:4C\n", "4C"},
		{"record.pae", `{"data": "8D"}`, "8D"},
		{"record.yaml", "data: '2E'\n", "2E"},
		{"record.yml", "data: '2E'\n", "2E"},
		{"beam.pae", "{8AB}", "{8AB}"},
		{"meter.pae", "@c 4C", "@c 4C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ReadRecord(tt.name, []byte(tt.content))
			if err != nil {
				t.Fatal(err)
			}
			if data, _ := rec.Data(); data != tt.data {
				t.Errorf("got %q, want %q", data, tt.data)
			}
		})
	}

	if _, err := ReadRecord("empty.pae", []byte(" \n")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestImportEmptyData(t *testing.T) {
	result, err := Import("@data:")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(result.Doc.Measures()); got != 1 {
		t.Errorf("got %d measures, want 1", got)
	}
}
