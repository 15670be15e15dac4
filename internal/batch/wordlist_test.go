package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadWordList(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "plain words",
			fileContent: `желание
дом
вода`,
			want: []string{"желание", "дом", "вода"},
		},
		{
			name: "words with translations",
			fileContent: `желание = desire
дом = house`,
			want: []string{"желание", "дом"},
		},
		{
			name: "comments and blank lines",
			fileContent: `# seeds for ru-en

желание
  # indented comment
  дом  
`,
			want: []string{"желание", "дом"},
		},
		{
			name:        "windows line endings",
			fileContent: "желание\r\nдом = house\r\nвода",
			want:        []string{"желание", "дом", "вода"},
		},
		{
			name:        "translation only is skipped",
			fileContent: "= desire\nдом",
			want:        []string{"дом"},
		},
		{
			name:        "duplicates keep first occurrence",
			fileContent: "дом\nвода\nдом = home",
			want:        []string{"дом", "вода"},
		},
		{
			name:        "decomposed input is normalized",
			fileContent: "e\u0301te\n\u00e9te",
			want:        []string{"\u00e9te"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "seeds.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadWordList(tmpFile)
			if err != nil {
				t.Fatalf("ReadWordList() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadWordList() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadWordList_MissingFile(t *testing.T) {
	_, err := ReadWordList(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}
